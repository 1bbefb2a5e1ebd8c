package user

import (
	"context"
	"errors"
	"fmt"
	"time"
	c "userapi/internal/core/domain/common"
	"userapi/internal/core/domain/user"
	"userapi/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "users_register_email_key"

const userColumns = `
	u.user_id, u.first_name, u.last_name, u.email, u.password_hash,
	u.gender, u.dob, u.country, u.state, u.city, u.address, u.profile_image_path,
	u.is_terms_accepted, u.created_at, u.reset_token, u.reset_token_expires_at,
	u.role_id, r.role_name`

const selectUsers = `SELECT` + userColumns + `
	FROM users_register u
	LEFT JOIN roles r ON r.role_id = u.role_id`

const createUser = `
	WITH u AS (
		INSERT INTO users_register (
			first_name, last_name, email, password_hash,
			gender, dob, country, state, city, address, profile_image_path,
			is_terms_accepted, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING *
	)
	SELECT` + userColumns + `
	FROM u
	LEFT JOIN roles r ON r.role_id = u.role_id`

// Absent profile values are sent as NULL and keep the stored column.
const updateUser = `
	WITH u AS (
		UPDATE users_register SET
			first_name = COALESCE($2::text, first_name),
			last_name = COALESCE($3::text, last_name),
			email = COALESCE($4::text, email),
			password_hash = COALESCE($5::text, password_hash),
			gender = COALESCE($6::text, gender),
			dob = COALESCE($7::date, dob),
			country = COALESCE($8::text, country),
			state = COALESCE($9::text, state),
			city = COALESCE($10::text, city),
			address = COALESCE($11::text, address),
			profile_image_path = COALESCE($12::text, profile_image_path),
			reset_token = CASE WHEN $13::boolean THEN $14::text ELSE reset_token END,
			reset_token_expires_at = CASE WHEN $13::boolean THEN $15::timestamptz ELSE reset_token_expires_at END
		WHERE user_id = $1
		RETURNING *
	)
	SELECT` + userColumns + `
	FROM u
	LEFT JOIN roles r ON r.role_id = u.role_id`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		createUser,
		input.FirstName,
		input.LastName,
		input.Email,
		string(input.PasswordHash),
		encodeText(input.Gender),
		encodeDate(input.Dob),
		encodeText(input.Country),
		encodeText(input.State),
		encodeText(input.City),
		encodeText(input.Address),
		encodeText(input.ProfileImagePath),
		input.IsTermsAccepted,
		input.CreatedAt,
	)
	u, err = scanUser(row)
	if isEmailUniqueViolation(err) {
		return u, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (user.User, error) {
	return r.getOne(ctx, selectUsers+` WHERE u.user_id = $1`, int64(id))
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, selectUsers+` WHERE u.email = $1`, email)
}

func (r *PgxUserRepository) GetByEmailAndPasswordHash(
	ctx context.Context,
	email string,
	hash user.PasswordHash,
) (user.User, error) {
	return r.getOne(ctx, selectUsers+` WHERE u.email = $1 AND u.password_hash = $2`, email, string(hash))
}

// GetByResetToken locks the row when called inside a transaction.
func (r *PgxUserRepository) GetByResetToken(ctx context.Context, token user.ResetToken) (user.User, error) {
	return r.getOne(ctx, selectUsers+` WHERE u.reset_token = $1 FOR UPDATE OF u`, string(token))
}

func (r *PgxUserRepository) ExistsWithEmail(ctx context.Context, email string) (exists bool, err error) {
	err = r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users_register WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *PgxUserRepository) List(ctx context.Context, order user.Order) ([]user.User, error) {
	rows, err := r.db.Query(ctx, selectUsers+` ORDER BY `+orderBy(order))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		if err := u.Validate(); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		updateUser,
		int64(input.ID),
		encodeText(input.FirstName),
		encodeText(input.LastName),
		encodeText(input.Email),
		encodeText(c.NewOptional(string(input.PasswordHash.Value), input.PasswordHash.IsPresent)),
		encodeText(input.Gender),
		encodeDate(input.Dob),
		encodeText(input.Country),
		encodeText(input.State),
		encodeText(input.City),
		encodeText(input.Address),
		encodeText(input.ProfileImagePath),
		input.DoResetTokenUpdate,
		encodeText(c.NewOptional(string(input.ResetToken.Value), input.ResetToken.IsPresent)),
		encodeTimestamptz(input.ResetTokenExpiresAt),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if isEmailUniqueViolation(err) {
		return u, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) Delete(ctx context.Context, id user.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users_register WHERE user_id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) ListCountries(ctx context.Context) ([]string, error) {
	return r.listDistinct(ctx, "country", "", "")
}

func (r *PgxUserRepository) ListStates(ctx context.Context, country string) ([]string, error) {
	return r.listDistinct(ctx, "state", "country", country)
}

func (r *PgxUserRepository) ListCities(ctx context.Context, state string) ([]string, error) {
	return r.listDistinct(ctx, "city", "state", state)
}

// listDistinct takes column names from the callers above only.
func (r *PgxUserRepository) listDistinct(
	ctx context.Context,
	column string,
	parentColumn string,
	parent string,
) ([]string, error) {
	query := fmt.Sprintf(
		`SELECT DISTINCT %[1]s COLLATE "C" AS value FROM users_register WHERE %[1]s !~ '^\s*$'`,
		column,
	)
	args := []interface{}{}
	if parentColumn != "" {
		query += fmt.Sprintf(` AND %s = $1`, parentColumn)
		args = append(args, parent)
	}
	query += ` ORDER BY 1`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

func (r *PgxUserRepository) getOne(ctx context.Context, query string, args ...interface{}) (u user.User, err error) {
	u, err = scanUser(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func isEmailUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE &&
		pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME
}

// orderBy renders a whitelisted ORDER BY clause. Absent text values sort as empty strings,
// absent dates sort before present ones, ties are broken by ID.
func orderBy(order user.Order) string {
	dir := "ASC"
	nulls := "NULLS FIRST"
	if order.Desc {
		dir = "DESC"
		nulls = "NULLS LAST"
	}
	text := func(column string) string {
		return fmt.Sprintf(`COALESCE(u.%s, '') COLLATE "C" %s`, column, dir)
	}
	var clause string
	switch order.Field {
	case user.OrderByFullName:
		clause = text("first_name") + ", " + text("last_name")
	case user.OrderByFirstName:
		clause = text("first_name")
	case user.OrderByLastName:
		clause = text("last_name")
	case user.OrderByEmail:
		clause = text("email")
	case user.OrderByGender:
		clause = text("gender")
	case user.OrderByCountry:
		clause = text("country")
	case user.OrderByDob:
		clause = fmt.Sprintf("u.dob %s %s", dir, nulls)
	default:
		return "u.user_id " + dir
	}
	return clause + ", u.user_id ASC"
}

func encodeText(value c.Optional[string]) pgtype.Text {
	if !value.IsPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: value.Value, Status: pgtype.Present}
}

func encodeDate(value c.Optional[c.Date]) pgtype.Date {
	if !value.IsPresent {
		return pgtype.Date{Status: pgtype.Null}
	}
	return pgtype.Date{Time: value.Value.Time(), Status: pgtype.Present}
}

func encodeTimestamptz(value c.Optional[time.Time]) pgtype.Timestamptz {
	if !value.IsPresent {
		return pgtype.Timestamptz{Status: pgtype.Null}
	}
	return pgtype.Timestamptz{Time: value.Value, Status: pgtype.Present}
}

func decodeText(value pgtype.Text) c.Optional[string] {
	return c.NewOptional(value.String, value.Status == pgtype.Present)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (u user.User, err error) {
	var (
		id                  int64
		passwordHash        string
		gender              pgtype.Text
		dob                 pgtype.Date
		country             pgtype.Text
		state               pgtype.Text
		city                pgtype.Text
		address             pgtype.Text
		profileImagePath    pgtype.Text
		resetToken          pgtype.Text
		resetTokenExpiresAt pgtype.Timestamptz
		roleID              pgtype.Int8
		roleName            pgtype.Text
	)
	err = row.Scan(
		&id,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&passwordHash,
		&gender,
		&dob,
		&country,
		&state,
		&city,
		&address,
		&profileImagePath,
		&u.IsTermsAccepted,
		&u.CreatedAt,
		&resetToken,
		&resetTokenExpiresAt,
		&roleID,
		&roleName,
	)
	if err != nil {
		return u, err
	}

	u.ID = user.ID(id)
	u.PasswordHash = user.PasswordHash(passwordHash)
	u.Gender = decodeText(gender)
	u.Dob = c.NewOptional(c.DateOf(dob.Time), dob.Status == pgtype.Present)
	u.Country = decodeText(country)
	u.State = decodeText(state)
	u.City = decodeText(city)
	u.Address = decodeText(address)
	u.ProfileImagePath = decodeText(profileImagePath)
	u.CreatedAt = u.CreatedAt.UTC()
	u.ResetToken = c.NewOptional(user.ResetToken(resetToken.String), resetToken.Status == pgtype.Present)
	u.ResetTokenExpiresAt = c.NewOptional(resetTokenExpiresAt.Time.UTC(), resetTokenExpiresAt.Status == pgtype.Present)
	if roleID.Status == pgtype.Present {
		u.Role = c.NewOptional(user.Role{ID: roleID.Int, Name: roleName.String}, true)
	}
	return u, nil
}
