package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key so the same models work on
// databases without a server-side uuid default.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "pending"
	PurchaseOrderStatusApproved  PurchaseOrderStatus = "approved"
	PurchaseOrderStatusDelivered PurchaseOrderStatus = "delivered"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the purchase order status is a known value
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusPending, PurchaseOrderStatusApproved,
		PurchaseOrderStatusDelivered, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// DeliveryOrderStatus represents the lifecycle state of a delivery order
type DeliveryOrderStatus string

const (
	DeliveryOrderStatusScheduled DeliveryOrderStatus = "scheduled"
	DeliveryOrderStatusInTransit DeliveryOrderStatus = "in-transit"
	DeliveryOrderStatusDelivered DeliveryOrderStatus = "delivered"
	DeliveryOrderStatusCancelled DeliveryOrderStatus = "cancelled"
)

// IsValid checks if the delivery order status is a known value
func (s DeliveryOrderStatus) IsValid() bool {
	switch s {
	case DeliveryOrderStatusScheduled, DeliveryOrderStatusInTransit,
		DeliveryOrderStatusDelivered, DeliveryOrderStatusCancelled:
		return true
	}
	return false
}

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "Unpaid"
	InvoiceStatusPaid   InvoiceStatus = "Paid"
)

// IsValid checks if the invoice status is a known value
func (s InvoiceStatus) IsValid() bool {
	return s == InvoiceStatusUnpaid || s == InvoiceStatusPaid
}

// AlertStatus represents the handling state of an alert
type AlertStatus string

const (
	AlertStatusOpen       AlertStatus = "open"
	AlertStatusInProgress AlertStatus = "in-progress"
	AlertStatusResolved   AlertStatus = "resolved"
)

// IsValid checks if the alert status is a known value
func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusOpen, AlertStatusInProgress, AlertStatusResolved:
		return true
	}
	return false
}

// AlertSeverity represents the severity of an alert
type AlertSeverity string

const (
	AlertSeverityCritical AlertSeverity = "critical"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityLow      AlertSeverity = "low"
)

// IsValid checks if the alert severity is a known value
func (s AlertSeverity) IsValid() bool {
	switch s {
	case AlertSeverityCritical, AlertSeverityHigh, AlertSeverityMedium, AlertSeverityLow:
		return true
	}
	return false
}

// UserRoleType represents the role of a user
type UserRoleType string

const (
	UserRoleAdmin    UserRoleType = "admin"
	UserRoleOperator UserRoleType = "operator"
	UserRoleViewer   UserRoleType = "viewer"
	UserRoleSystem   UserRoleType = "system"
)

// Client represents a gas customer site that receives bulk deliveries
type Client struct {
	BaseModel
	Code    string `gorm:"size:100;uniqueIndex;not null"`
	Name    string `gorm:"size:255;not null"`
	Address string `gorm:"type:text"`
	Phone   string `gorm:"size:50"`
	Email   string `gorm:"size:255"`
	Active  bool   `gorm:"not null;default:true"`
}

// PurchaseOrder represents a bulk gas order placed on behalf of a client.
// ClientName is captured at creation time and not re-synchronized when
// the client record changes later.
type PurchaseOrder struct {
	BaseModel
	Number          string              `gorm:"size:50;uniqueIndex;not null"`
	ClientID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	Client          *Client             `gorm:"foreignKey:ClientID"`
	ClientName      string              `gorm:"size:255;not null"`
	PoDate          time.Time           `gorm:"not null"`
	DeliveryDate    time.Time           `gorm:"not null"`
	DeliveryTime    string              `gorm:"size:20"`
	DeliveryAddress string              `gorm:"type:text"`
	PicName         string              `gorm:"size:255"`
	PicPhone        string              `gorm:"size:50"`
	Items           []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	Discount        float64             `gorm:"not null;default:0"`
	DeliveryFee     float64             `gorm:"not null;default:0"`
	TaxRate         float64             `gorm:"not null;default:0"`
	Status          PurchaseOrderStatus `gorm:"size:20;not null;default:'pending';index"`
	Notes           string              `gorm:"type:text"`
}

// PurchaseOrderItem represents a single line on a purchase order
type PurchaseOrderItem struct {
	BaseModel
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"size:255;not null"`
	Description     string    `gorm:"type:text"`
	Quantity        int       `gorm:"not null"`
	Price           float64   `gorm:"not null"`
}

// DeliveryOrder represents the shipment spawned when a purchase order
// is approved. It never exists without its purchase order.
type DeliveryOrder struct {
	BaseModel
	Number          string                `gorm:"size:50;uniqueIndex;not null"`
	PurchaseOrderID uuid.UUID             `gorm:"type:uuid;not null;index"`
	PurchaseOrder   *PurchaseOrder        `gorm:"foreignKey:PurchaseOrderID"`
	ClientID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	ClientName      string                `gorm:"size:255;not null"`
	DeliveryDate    time.Time             `gorm:"not null"`
	DeliveryTime    string                `gorm:"size:20"`
	DeliveryAddress string                `gorm:"type:text"`
	Status          DeliveryOrderStatus   `gorm:"size:20;not null;default:'scheduled';index"`
	Verification    *DeliveryVerification `gorm:"foreignKey:DeliveryOrderID"`
}

// DeliveryVerification records the proof of delivery captured when a
// delivery order is verified. A delivery order has at most one.
type DeliveryVerification struct {
	BaseModel
	DeliveryOrderID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	DriverName      string    `gorm:"size:255;not null"`
	DriverPhone     string    `gorm:"size:50;not null"`
	ReceiverName    string    `gorm:"size:255;not null"`
	ReceiverPhone   string    `gorm:"size:50;not null"`
	Notes           string    `gorm:"type:text"`
	ImageFileID     uuid.UUID `gorm:"type:uuid;not null"`
	VerifiedAt      time.Time `gorm:"not null"`
	VerifiedBy      string    `gorm:"size:255"`
}

// Invoice represents a billing document issued to a client. Amounts are
// stored in minor currency units and entered by operators, never computed.
type Invoice struct {
	BaseModel
	Number           string        `gorm:"size:50;uniqueIndex;not null"`
	ClientID         uuid.UUID     `gorm:"type:uuid;not null;index"`
	Client           *Client       `gorm:"foreignKey:ClientID"`
	ClientName       string        `gorm:"size:255;not null"`
	InvoiceDate      time.Time     `gorm:"not null"`
	DueDate          time.Time     `gorm:"not null"`
	Description      string        `gorm:"type:text"`
	TotalConsumption string        `gorm:"size:100"`
	TotalAmount      int64         `gorm:"not null"`
	Status           InvoiceStatus `gorm:"size:20;not null;default:'Unpaid';index"`
	PaidAt           *time.Time
}

// Alert represents an operational alarm raised against the gas network
type Alert struct {
	BaseModel
	Number      string        `gorm:"size:50;uniqueIndex;not null"`
	Description string        `gorm:"type:text;not null"`
	AlertType   string        `gorm:"size:100;not null"`
	Severity    AlertSeverity `gorm:"size:20;not null"`
	Status      AlertStatus   `gorm:"size:20;not null;default:'open';index"`
	ClientID    *uuid.UUID    `gorm:"type:uuid;index"`
	Client      *Client       `gorm:"foreignKey:ClientID"`
	StartDate   time.Time     `gorm:"not null"`
	EndDate     *time.Time
	ResolvedBy  string `gorm:"size:255"`
	Notes       string `gorm:"type:text"`
}

// User represents an application user synchronized from the identity provider
type User struct {
	BaseModel
	Email       string         `gorm:"size:255;uniqueIndex;not null"`
	DisplayName string         `gorm:"size:255"`
	Roles       pq.StringArray `gorm:"type:text[]"`
	Active      bool           `gorm:"not null;default:true"`
	LastLoginAt *time.Time
}

// NumberSequence tracks the last issued document number per prefix and year
type NumberSequence struct {
	Prefix       string    `gorm:"size:10;primaryKey"`
	Year         int       `gorm:"primaryKey"`
	LastSequence int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// File represents metadata for an uploaded file
type File struct {
	BaseModel
	FileName    string `gorm:"size:255;not null"`
	ContentType string `gorm:"size:100;not null"`
	Size        int64  `gorm:"not null"`
	StoragePath string `gorm:"size:512;not null"`
	UploadedBy  string `gorm:"size:255"`
}

// AuditLog represents a recorded change to an entity
type AuditLog struct {
	BaseModel
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	UserEmail  string     `gorm:"size:255"`
	Action     string     `gorm:"size:50;not null;index"`
	EntityType string     `gorm:"size:100;not null;index"`
	EntityID   string     `gorm:"size:100;index"`
	EntityName string     `gorm:"size:255"`
	OldValues  string     `gorm:"type:text"`
	NewValues  string     `gorm:"type:text"`
	Metadata   string     `gorm:"type:text"`
	IPAddress  string     `gorm:"size:50"`
	UserAgent  string     `gorm:"size:512"`
}
