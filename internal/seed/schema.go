// Package seed loads demo or fixture data from YAML through the services,
// so seeded rows get the same validation and defaults as API writes.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the top-level YAML document. Records refer to each other by ref,
// never by database id.
type File struct {
	Users          []UserSeed      `yaml:"users"`
	Customers      []CustomerSeed  `yaml:"customers"`
	Employees      []EmployeeSeed  `yaml:"employees"`
	Projects       []ProjectSeed   `yaml:"projects"`
	Proposals      []ProposalSeed  `yaml:"proposals"`
	PurchaseOrders []POSeed        `yaml:"purchase_orders"`
	Timesheets     []TimesheetSeed `yaml:"timesheets"`
	Invoices       []InvoiceSeed   `yaml:"invoices"`
}

type UserSeed struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role,omitempty"`
}

type CustomerSeed struct {
	Ref           string `yaml:"ref"`
	Name          string `yaml:"name"`
	ContactPerson string `yaml:"contact_person,omitempty"`
	ContactEmail  string `yaml:"contact_email,omitempty"`
	ContactPhone  string `yaml:"contact_phone,omitempty"`
	Address       string `yaml:"address,omitempty"`
}

type EmployeeSeed struct {
	Ref        string `yaml:"ref"`
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Role       string `yaml:"role,omitempty"`
	Department string `yaml:"department,omitempty"`
	HireDate   string `yaml:"hire_date,omitempty"`
	HourlyRate string `yaml:"hourly_rate"`
}

type TeamSeed struct {
	Employee   string `yaml:"employee"`
	Role       string `yaml:"role,omitempty"`
	Allocation int    `yaml:"allocation,omitempty"`
}

type ProjectSeed struct {
	Ref       string     `yaml:"ref"`
	Customer  string     `yaml:"customer"`
	Name      string     `yaml:"name"`
	Manager   string     `yaml:"manager,omitempty"`
	Status    string     `yaml:"status,omitempty"`
	StartDate string     `yaml:"start_date,omitempty"`
	EndDate   string     `yaml:"end_date,omitempty"`
	Budget    string     `yaml:"budget,omitempty"`
	Type      string     `yaml:"type,omitempty"`
	Team      []TeamSeed `yaml:"team,omitempty"`
}

type ProposalSeed struct {
	Ref     string `yaml:"ref"`
	Project string `yaml:"project"`
	Number  string `yaml:"number"`
	Date    string `yaml:"date,omitempty"`
	Amount  string `yaml:"amount"`
	Status  string `yaml:"status,omitempty"`
	Notes   string `yaml:"notes,omitempty"`
}

type POSeed struct {
	Ref      string  `yaml:"ref"`
	Project  string  `yaml:"project"`
	Proposal string  `yaml:"proposal,omitempty"`
	Number   string  `yaml:"number"`
	Date     string  `yaml:"date,omitempty"`
	Hours    float64 `yaml:"hours"`
	BillRate string  `yaml:"bill_rate"`
	Amount   string  `yaml:"amount,omitempty"`
	Status   string  `yaml:"status,omitempty"`
}

type TimesheetSeed struct {
	Employee    string  `yaml:"employee"`
	Project     string  `yaml:"project"`
	Date        string  `yaml:"date"`
	Hours       float64 `yaml:"hours"`
	Description string  `yaml:"description,omitempty"`
	Billable    *bool   `yaml:"billable,omitempty"`
}

type DetailSeed struct {
	Description string `yaml:"description"`
	Quantity    string `yaml:"quantity"`
	UnitPrice   string `yaml:"unit_price"`
}

type InvoiceSeed struct {
	PO      string       `yaml:"po,omitempty"`
	Number  string       `yaml:"number"`
	Date    string       `yaml:"date"`
	DueDate string       `yaml:"due_date,omitempty"`
	Total   string       `yaml:"total"`
	Tax     string       `yaml:"tax,omitempty"`
	Status  string       `yaml:"status,omitempty"`
	Details []DetailSeed `yaml:"details,omitempty"`
}

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the built-in demo data set.
func Demo() (*File, error) {
	return Parse(demoYAML)
}

// Parse decodes a seed document. Unknown keys are rejected so typos surface.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing seed yaml: %w", err)
	}
	return &f, nil
}

// LoadFile reads and parses a seed file from disk.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(data)
}
