package rest

const (
	RouteRoot = "/"

	// api
	RouteApi = "/api"

	RouteUsers      = RouteApi + "/users"
	RouteUserSearch = RouteUsers + "/search"
	RouteUserExport = RouteUsers + "/export-csv"
	RouteUser       = RouteUsers + "/:id"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)
