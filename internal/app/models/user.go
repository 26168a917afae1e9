package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         RoleType  `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

// Contact holds the optional contact and bio fields shared by both profile kinds
type Contact struct {
	Phone      *string `db:"phone"`
	Location   *string `db:"location"`
	Bio        *string `db:"bio"`
	LinkedIn   *string `db:"linkedin"`
	Github     *string `db:"github"`
	ProfilePic *string `db:"profile_pic"`
}

// AlumniProfile defines the 'alumni_profiles' table
type AlumniProfile struct {
	ID         int64   `db:"id"`
	UserID     int64   `db:"user_id"`
	Occupation *string `db:"occupation"`
	Company    *string `db:"company"`
	Domain     *string `db:"domain"`
	Contact
	CreatedAt time.Time `db:"created_at"`
}

// StudentProfile defines the 'student_profiles' table
type StudentProfile struct {
	ID       int64    `db:"id"`
	UserID   int64    `db:"user_id"`
	CGPA     *float64 `db:"cgpa"`
	Category *string  `db:"category"`
	Contact
	CreatedAt time.Time `db:"created_at"`
}

// UserWithProfile pairs a user with the profile matching its role, if any
type UserWithProfile struct {
	User           *User
	AlumniProfile  *AlumniProfile
	StudentProfile *StudentProfile
}
