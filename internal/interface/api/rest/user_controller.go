package rest

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"user-directory-api/internal/apperror"
	"user-directory-api/internal/application/ports"
	"user-directory-api/internal/application/services"
	domain "user-directory-api/internal/domain/user"
	"user-directory-api/internal/infrastructure/storage"
	"user-directory-api/internal/interface/api/rest/dto/user"
	"user-directory-api/internal/interface/api/rest/validator"
)

const (
	imageField     = "profileImage"
	exportFileName = "users.csv"
)

type UserController struct {
	userService   ports.UserService
	exportService ports.ExportService
	storage       ports.FileStorage
	logger        *zap.Logger
}

func NewUserController(
	r gin.IRouter,
	userService ports.UserService,
	exportService ports.ExportService,
	fileStorage ports.FileStorage,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		userService:   userService,
		exportService: exportService,
		storage:       fileStorage,
		logger:        logger,
	}

	r.GET(RouteUsers, uc.GetUsersHandler)
	r.POST(RouteUsers, uc.CreateUserHandler)
	r.GET(RouteUserSearch, uc.SearchUsersHandler)
	r.GET(RouteUserExport, uc.ExportCSVHandler)
	r.GET(RouteUser, uc.GetUserHandler)
	r.PUT(RouteUser, uc.UpdateUserHandler)
	r.DELETE(RouteUser, uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	q := domain.ListQuery{
		Page:   validator.ParsePositiveInt(c.Query("page"), services.DefaultPage),
		Limit:  validator.ParsePositiveInt(c.Query("limit"), services.DefaultLimit),
		Search: c.Query("search"),
	}

	page, err := uc.userService.FindUsers(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(errors.WithStack(err))
		return
	}

	c.JSON(http.StatusOK, user.ToListResponse(*page))
}

func (uc *UserController) SearchUsersHandler(c *gin.Context) {
	users, err := uc.userService.SearchUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		_ = c.Error(errors.WithStack(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) ExportCSVHandler(c *gin.Context) {
	path, err := uc.exportService.ExportCSV(c.Request.Context())
	if err != nil {
		_ = c.Error(errors.WithStack(err))
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			uc.logger.Warn("failed to remove export file", zap.String("file", path), zap.Error(err))
		}
	}()

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.FileAttachment(path, exportFileName)
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("id"))
	if !ok {
		_ = c.Error(errors.WithStack(domain.ErrNotFound))
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(errors.WithStack(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	req, err := bindRequest(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	f := req.ToFields()

	img, err := uc.saveImage(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if img != "" {
		f.ProfileImage = &img
	}

	u, err := uc.userService.CreateUser(c.Request.Context(), f)
	if err != nil {
		uc.storage.Remove(img)
		_ = c.Error(errors.WithStack(err))
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("id"))
	if !ok {
		_ = c.Error(errors.WithStack(domain.ErrNotFound))
		return
	}

	req, err := bindRequest(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	f := req.ToFields()

	img, err := uc.saveImage(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	switch {
	case img != "":
		f.ProfileImage = &img
	case bool(req.RemoveImage):
		def := domain.DefaultProfileImage
		f.ProfileImage = &def
	}

	u, err := uc.userService.UpdateUser(c.Request.Context(), id, f)
	if err != nil {
		uc.storage.Remove(img)
		_ = c.Error(errors.WithStack(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("id"))
	if !ok {
		_ = c.Error(errors.WithStack(domain.ErrNotFound))
		return
	}

	if _, err := uc.userService.DeleteUser(c.Request.Context(), id); err != nil {
		_ = c.Error(errors.WithStack(err))
		return
	}

	c.JSON(http.StatusOK, user.MessageResponse{Message: "User removed"})
}

// bindRequest accepts JSON, urlencoded and multipart bodies.
func bindRequest(c *gin.Context) (user.Request, error) {
	if c.ContentType() == binding.MIMEJSON {
		var req user.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			return user.Request{}, apperror.Wrap(http.StatusBadRequest, err, "Invalid request body")
		}
		return req, nil
	}

	return user.FromForm(c.GetPostForm), nil
}

// saveImage stores the optional uploaded avatar and returns its file name,
// or "" when none was sent.
func (uc *UserController) saveImage(c *gin.Context) (string, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return "", nil
	}

	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", apperror.Wrap(http.StatusBadRequest, err, "Invalid multipart body")
	}

	name, err := uc.storage.Save(c.Request.Context(), imageField, fh)
	if errors.Is(err, storage.ErrFileTooLarge) {
		return "", apperror.Wrap(http.StatusRequestEntityTooLarge, err, "File too large")
	}
	if err != nil {
		return "", errors.WithStack(err)
	}

	return name, nil
}
