package domain

import "time"

// Address is a student's postal address.
type Address struct {
	Street     string
	Number     string
	Complement *string
	District   *string
	City       string
	State      string
	ZipCode    string
}

// Student is a gym member.
type Student struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string
	BirthDate    string
	CPF          *string
	PlanID       *int64
	StartDate    string
	Address      Address
	MedicalNotes *string
	CreatedAt    time.Time
}
