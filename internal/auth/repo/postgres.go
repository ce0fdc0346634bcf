package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// User é a conta dona dos registros de aposta.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	FirstName       *string   `json:"firstName"`
	LastName        *string   `json:"lastName"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Postgres implementa a persistência de usuários.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

const userColumns = `id, email, password_hash, first_name, last_name, profile_image_url, created_at, updated_at`

func (p *Postgres) Create(ctx context.Context, u User) (User, error) {
	u.ID = uuid.NewString()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.ProfileImageURL, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (p *Postgres) GetByEmail(ctx context.Context, email string) (User, error) {
	return p.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (p *Postgres) GetByID(ctx context.Context, id string) (User, error) {
	return p.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

// UpdateProfileImage troca só a URL da foto de perfil.
func (p *Postgres) UpdateProfileImage(ctx context.Context, id, url string) (User, error) {
	res, err := p.db.ExecContext(ctx,
		`UPDATE users SET profile_image_url=$1, updated_at=NOW() WHERE id=$2`, url, id)
	if err != nil {
		return User{}, fmt.Errorf("update profile image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return User{}, ErrNotFound
	}
	return p.GetByID(ctx, id)
}

func (p *Postgres) getOne(ctx context.Context, q string, arg any) (User, error) {
	var u User
	err := p.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}
