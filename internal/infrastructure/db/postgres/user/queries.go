package user

const (
	userColumns = `id, first_name, last_name, email, mobile, gender, status, location, date_of_birth, profile_image, created_at, updated_at`

	searchFilter = `
		($1 = ''
		  OR strpos(lower(first_name), lower($1)) > 0
		  OR strpos(lower(last_name), lower($1)) > 0
		  OR strpos(lower(email), lower($1)) > 0)
	`

	SelectUsers = `
		SELECT ` + userColumns + `
		FROM users
		WHERE ` + searchFilter + `
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	CountUsers = `
		SELECT count(*)
		FROM users
		WHERE ` + searchFilter
	SelectAllUsers = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC, id
	`
	SelectUserByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	InsertUser = `
		INSERT INTO users (first_name, last_name, email, mobile, gender, status, location, date_of_birth, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns
	UpdateUserByID = `
		UPDATE users
		SET first_name    = COALESCE($1::text, first_name),
		    last_name     = COALESCE($2::text, last_name),
		    email         = COALESCE($3::text, email),
		    mobile        = COALESCE($4::text, mobile),
		    gender        = COALESCE($5::text, gender),
		    status        = COALESCE($6::text, status),
		    location      = COALESCE($7::text, location),
		    date_of_birth = COALESCE($8::date, date_of_birth),
		    profile_image = COALESCE($9::text, profile_image),
		    updated_at    = now()
		WHERE id = $10
		RETURNING ` + userColumns
	DeleteUserByID = `
		DELETE FROM users
		WHERE id = $1
		RETURNING ` + userColumns
)
