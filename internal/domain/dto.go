package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs for API responses

type ClientDTO struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt string    `json:"createdAt"` // ISO 8601
	UpdatedAt string    `json:"updatedAt"` // ISO 8601
}

type PurchaseOrderItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	LineTotal   float64   `json:"lineTotal"`
}

// OrderTotalsDTO carries the derived money breakdown, rounded to two
// decimals for display
type OrderTotalsDTO struct {
	Subtotal      float64 `json:"subtotal"`
	AfterDiscount float64 `json:"afterDiscount"`
	WithDelivery  float64 `json:"withDelivery"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
}

type PurchaseOrderDTO struct {
	ID              uuid.UUID              `json:"id"`
	Number          string                 `json:"number"`
	ClientID        uuid.UUID              `json:"clientId"`
	ClientName      string                 `json:"clientName"`
	PoDate          string                 `json:"poDate"`
	DeliveryDate    string                 `json:"deliveryDate"`
	DeliveryTime    string                 `json:"deliveryTime,omitempty"`
	DeliveryAddress string                 `json:"deliveryAddress,omitempty"`
	PicName         string                 `json:"picName,omitempty"`
	PicPhone        string                 `json:"picPhone,omitempty"`
	Items           []PurchaseOrderItemDTO `json:"items"`
	Discount        float64                `json:"discount"`
	DeliveryFee     float64                `json:"deliveryFee"`
	TaxRate         float64                `json:"taxRate"`
	Totals          OrderTotalsDTO         `json:"totals"`
	Status          PurchaseOrderStatus    `json:"status"`
	Notes           string                 `json:"notes,omitempty"`
	CreatedAt       string                 `json:"createdAt"`
	UpdatedAt       string                 `json:"updatedAt"`
}

type DeliveryVerificationDTO struct {
	DriverName    string    `json:"driverName"`
	DriverPhone   string    `json:"driverPhone"`
	ReceiverName  string    `json:"receiverName"`
	ReceiverPhone string    `json:"receiverPhone"`
	Notes         string    `json:"notes,omitempty"`
	ImageFileID   uuid.UUID `json:"imageFileId"`
	VerifiedAt    string    `json:"verifiedAt"`
	VerifiedBy    string    `json:"verifiedBy,omitempty"`
}

type DeliveryOrderDTO struct {
	ID                  uuid.UUID                `json:"id"`
	Number              string                   `json:"number"`
	PurchaseOrderID     uuid.UUID                `json:"purchaseOrderId"`
	PurchaseOrderNumber string                   `json:"purchaseOrderNumber,omitempty"`
	ClientID            uuid.UUID                `json:"clientId"`
	ClientName          string                   `json:"clientName"`
	DeliveryDate        string                   `json:"deliveryDate"`
	DeliveryTime        string                   `json:"deliveryTime,omitempty"`
	DeliveryAddress     string                   `json:"deliveryAddress,omitempty"`
	Items               []PurchaseOrderItemDTO   `json:"items,omitempty"`
	Total               float64                  `json:"total"`
	Status              DeliveryOrderStatus      `json:"status"`
	Verification        *DeliveryVerificationDTO `json:"verification,omitempty"`
	CreatedAt           string                   `json:"createdAt"`
	UpdatedAt           string                   `json:"updatedAt"`
}

type InvoiceDTO struct {
	ID               uuid.UUID     `json:"id"`
	Number           string        `json:"number"`
	ClientID         uuid.UUID     `json:"clientId"`
	ClientName       string        `json:"clientName"`
	InvoiceDate      string        `json:"invoiceDate"`
	DueDate          string        `json:"dueDate"`
	Description      string        `json:"description,omitempty"`
	TotalConsumption string        `json:"totalConsumption,omitempty"`
	TotalAmount      int64         `json:"totalAmount"`
	FormattedAmount  string        `json:"formattedAmount"`
	Status           InvoiceStatus `json:"status"`
	PaidAt           *string       `json:"paidAt,omitempty"`
	Overdue          bool          `json:"overdue"`
	CreatedAt        string        `json:"createdAt"`
	UpdatedAt        string        `json:"updatedAt"`
}

type AlertDTO struct {
	ID          uuid.UUID     `json:"id"`
	Number      string        `json:"number"`
	Description string        `json:"description"`
	AlertType   string        `json:"alertType"`
	Severity    AlertSeverity `json:"severity"`
	Status      AlertStatus   `json:"status"`
	ClientID    *uuid.UUID    `json:"clientId,omitempty"`
	ClientName  string        `json:"clientName,omitempty"`
	StartDate   string        `json:"startDate"`
	EndDate     *string       `json:"endDate,omitempty"`
	ResolvedBy  string        `json:"resolvedBy,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
}

// AlertStatsDTO holds aggregated alert counts for the dashboard
type AlertStatsDTO struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Critical   int64 `json:"critical"`
}

type FileDTO struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedBy  string    `json:"uploadedBy,omitempty"`
	CreatedAt   string    `json:"createdAt"`
}

// NumberSequenceDTO exposes a document number counter for admin inspection
type NumberSequenceDTO struct {
	Prefix       string `json:"prefix"`
	Year         int    `json:"year"`
	LastSequence int    `json:"lastSequence"`
	UpdatedAt    string `json:"updatedAt"`
}

type AuditLogDTO struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"userId,omitempty"`
	UserEmail  string     `json:"userEmail,omitempty"`
	Action     string     `json:"action"`
	EntityType string     `json:"entityType"`
	EntityID   string     `json:"entityId,omitempty"`
	EntityName string     `json:"entityName,omitempty"`
	OldValues  string     `json:"oldValues,omitempty"`
	NewValues  string     `json:"newValues,omitempty"`
	Metadata   string     `json:"metadata,omitempty"`
	IPAddress  string     `json:"ipAddress,omitempty"`
	CreatedAt  string     `json:"createdAt"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// API Response wrapper
type APIResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}

// Request DTOs

type CreatePurchaseOrderItemRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type CreatePurchaseOrderRequest struct {
	ClientID        uuid.UUID                        `json:"clientId" validate:"required"`
	PoDate          *time.Time                       `json:"poDate,omitempty"`
	DeliveryDate    time.Time                        `json:"deliveryDate" validate:"required"`
	DeliveryTime    string                           `json:"deliveryTime,omitempty" validate:"max=20"`
	DeliveryAddress string                           `json:"deliveryAddress,omitempty" validate:"max=500"`
	PicName         string                           `json:"picName,omitempty" validate:"max=200"`
	PicPhone        string                           `json:"picPhone,omitempty" validate:"max=50"`
	Items           []CreatePurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Discount        float64                          `json:"discount,omitempty" validate:"gte=0"`
	DeliveryFee     *float64                         `json:"deliveryFee,omitempty" validate:"omitempty,gte=0"`
	TaxRate         *float64                         `json:"taxRate,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes           string                           `json:"notes,omitempty"`
}

// VerifyDeliveryRequest carries the text fields of the multipart proof
// of delivery form. The image arrives as a separate form file.
type VerifyDeliveryRequest struct {
	DriverName    string `json:"driverName" validate:"required,min=2,max=200"`
	DriverPhone   string `json:"driverPhone" validate:"required,min=5,max=50"`
	ReceiverName  string `json:"receiverName" validate:"required,min=2,max=200"`
	ReceiverPhone string `json:"receiverPhone" validate:"required,min=5,max=50"`
	Notes         string `json:"notes,omitempty"`
}

type CreateInvoiceRequest struct {
	ClientID         uuid.UUID  `json:"clientId" validate:"required"`
	InvoiceDate      *time.Time `json:"invoiceDate,omitempty"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	Description      string     `json:"description,omitempty"`
	TotalConsumption string     `json:"totalConsumption,omitempty" validate:"max=100"`
	TotalAmount      int64      `json:"totalAmount" validate:"required,gt=0"`
}

type CreateAlertRequest struct {
	Description string        `json:"description" validate:"required"`
	AlertType   string        `json:"alertType" validate:"required,max=100"`
	Severity    AlertSeverity `json:"severity" validate:"required"`
	ClientID    *uuid.UUID    `json:"clientId,omitempty"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

type UpdateAlertStatusRequest struct {
	Status AlertStatus `json:"status" validate:"required"`
	Notes  string      `json:"notes,omitempty"`
}

type CreateClientRequest struct {
	Code    string `json:"code" validate:"required,max=100"`
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address,omitempty" validate:"max=500"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdateClientRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address,omitempty" validate:"max=500"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Active  *bool  `json:"active,omitempty"`
}
