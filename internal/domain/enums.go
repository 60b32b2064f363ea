package domain

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "Planning"
	ProjectActive    ProjectStatus = "Active"
	ProjectOnHold    ProjectStatus = "On Hold"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectClosed    ProjectStatus = "Closed"
	ProjectCancelled ProjectStatus = "Cancelled"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[ProjectStatus]bool{
	ProjectPlanning: true, ProjectActive: true, ProjectOnHold: true,
	ProjectCompleted: true, ProjectClosed: true, ProjectCancelled: true,
}

func (s ProjectStatus) Valid() bool { return ValidProjectStatuses[s] }

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "Draft"
	InvoiceSent      InvoiceStatus = "Sent"
	InvoicePaid      InvoiceStatus = "Paid"
	InvoiceOverdue   InvoiceStatus = "Overdue"
	InvoiceCancelled InvoiceStatus = "Cancelled"
)

var ValidInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceDraft: true, InvoiceSent: true, InvoicePaid: true,
	InvoiceOverdue: true, InvoiceCancelled: true,
}

func (s InvoiceStatus) Valid() bool { return ValidInvoiceStatuses[s] }

// DocumentStatus is shared by proposals and purchase orders.
type DocumentStatus string

const (
	DocumentDraft     DocumentStatus = "Draft"
	DocumentActive    DocumentStatus = "Active"
	DocumentClosed    DocumentStatus = "Closed"
	DocumentCancelled DocumentStatus = "Cancelled"
)

var ValidDocumentStatuses = map[DocumentStatus]bool{
	DocumentDraft: true, DocumentActive: true, DocumentClosed: true, DocumentCancelled: true,
}

func (s DocumentStatus) Valid() bool { return ValidDocumentStatuses[s] }

type UserRole string

const (
	RoleAdmin           UserRole = "Admin"
	RoleDeliveryManager UserRole = "Delivery Manager"
	RoleProjectManager  UserRole = "Project Manager"
	RoleFinanceManager  UserRole = "Finance Manager"
	RoleAccountManager  UserRole = "Account Manager"
	RoleTeamMember      UserRole = "Team Member"
)

var ValidRoles = map[UserRole]bool{
	RoleAdmin: true, RoleDeliveryManager: true, RoleProjectManager: true,
	RoleFinanceManager: true, RoleAccountManager: true, RoleTeamMember: true,
}

func (r UserRole) Valid() bool { return ValidRoles[r] }
