package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role distinguishes the two kinds of accounts.
type Role string

const (
	RoleAthlete Role = "athlete" // follows schedules and records activities
	RoleCoach   Role = "coach"   // maintains the exercise and plan catalogs
)

// User is an account. Athletes are referenced by the engine through AthleteRef.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // never exposed
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAthlete() bool {
	return u.Role == RoleAthlete
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

// AthleteRef is the opaque athlete reference stored on schedules.
func (u *User) AthleteRef() string {
	return u.ID.Hex()
}
