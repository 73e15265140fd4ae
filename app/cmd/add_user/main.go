package main

import (
	"flag"
	"fmt"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/database"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// Bootstraps the first admin account so the web login works on a fresh
// database.
func main() {
	email := flag.String("email", "", "email address for the new admin")
	password := flag.String("password", "", "password for the new admin")
	firstName := flag.String("first-name", "System", "first name")
	lastName := flag.String("last-name", "Admin", "last name")
	role := flag.String("role", models.RoleAdmin, "role to assign")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_user -email <email> -password <password> [-first-name X -last-name Y -role Admin]")
		return
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		return
	}

	user := &models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  hashed,
	}
	err = db.QueryRow(
		`INSERT INTO users (email, password, first_name, last_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		user.Email, user.Password, user.FirstName, user.LastName,
	).Scan(&user.ID)
	if err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	if err := database.AssignUserRole(db, user.ID, *role); err != nil {
		fmt.Printf("Error assigning role: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s %s (%s) with role %s\n",
		user.FirstName, user.LastName, user.Email, *role)
}
