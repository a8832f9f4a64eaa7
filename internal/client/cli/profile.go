package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Profile fetches and prints the current profile.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.profiles.Get(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Name:        %s\n", u.Name)
	fmt.Printf("Email:       %s\n", u.Email)
	fmt.Printf("Employee ID: %s\n", u.EmployeeID)
	fmt.Printf("Department:  %s\n", u.Department)
	fmt.Printf("Position:    %s\n", u.Position)
	fmt.Printf("Phone:       %s\n", u.Phone)
	fmt.Printf("Joined:      %s\n", u.JoinDate)
	fmt.Printf("Schedule:    %s\n", u.WorkSchedule)
	return nil
}

// EditProfile prompts for the editable fields, keeping current values on an
// empty answer, and submits the update. Employee ID, role and join date stay
// as they are.
func (a *App) EditProfile(ctx context.Context) error {
	u, err := a.profiles.Get(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	edited := *u
	if edited.Name, err = getTextOrDefault(a.reader, "Name", u.Name, os.Stdout); err != nil {
		return err
	}
	if edited.Email, err = getTextOrDefault(a.reader, "Email", u.Email, os.Stdout); err != nil {
		return err
	}
	if edited.Phone, err = getTextOrDefault(a.reader, "Phone", u.Phone, os.Stdout); err != nil {
		return err
	}
	if edited.Department, err = getTextOrDefault(a.reader, "Department", u.Department, os.Stdout); err != nil {
		return err
	}
	if edited.Position, err = getTextOrDefault(a.reader, "Position", u.Position, os.Stdout); err != nil {
		return err
	}

	if _, err := a.profiles.Update(ctx, edited); err != nil {
		log.Printf("Update unsuccessfull: %s", err.Error())
		return err
	}

	fmt.Println("Profile updated")
	return nil
}
