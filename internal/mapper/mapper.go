package mapper

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sixink-6/gas-grove-api/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// ToClientDTO converts Client to ClientDTO
func ToClientDTO(client *domain.Client) domain.ClientDTO {
	return domain.ClientDTO{
		ID:        client.ID,
		Code:      client.Code,
		Name:      client.Name,
		Address:   client.Address,
		Phone:     client.Phone,
		Email:     client.Email,
		Active:    client.Active,
		CreatedAt: client.CreatedAt.Format(timeFormat),
		UpdatedAt: client.UpdatedAt.Format(timeFormat),
	}
}

// ToClientDTOs converts a slice of Clients to DTOs
func ToClientDTOs(clients []domain.Client) []domain.ClientDTO {
	dtos := make([]domain.ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = ToClientDTO(&clients[i])
	}
	return dtos
}

// ToPurchaseOrderDTO converts PurchaseOrder to PurchaseOrderDTO. The
// totals are derived from the stored lines and rounded to two decimals
// here, at the display boundary.
func ToPurchaseOrderDTO(order *domain.PurchaseOrder) domain.PurchaseOrderDTO {
	items := make([]domain.PurchaseOrderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = domain.PurchaseOrderItemDTO{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			LineTotal:   domain.RoundAmount(float64(item.Quantity) * item.Price),
		}
	}

	totals := order.Totals()

	return domain.PurchaseOrderDTO{
		ID:              order.ID,
		Number:          order.Number,
		ClientID:        order.ClientID,
		ClientName:      order.ClientName,
		PoDate:          order.PoDate.Format(timeFormat),
		DeliveryDate:    order.DeliveryDate.Format(timeFormat),
		DeliveryTime:    order.DeliveryTime,
		DeliveryAddress: order.DeliveryAddress,
		PicName:         order.PicName,
		PicPhone:        order.PicPhone,
		Items:           items,
		Discount:        order.Discount,
		DeliveryFee:     order.DeliveryFee,
		TaxRate:         order.TaxRate,
		Totals: domain.OrderTotalsDTO{
			Subtotal:      domain.RoundAmount(totals.Subtotal),
			AfterDiscount: domain.RoundAmount(totals.AfterDiscount),
			WithDelivery:  domain.RoundAmount(totals.WithDelivery),
			Tax:           domain.RoundAmount(totals.Tax),
			Total:         domain.RoundAmount(totals.Total),
		},
		Status:    order.Status,
		Notes:     order.Notes,
		CreatedAt: order.CreatedAt.Format(timeFormat),
		UpdatedAt: order.UpdatedAt.Format(timeFormat),
	}
}

// ToPurchaseOrderDTOs converts a slice of PurchaseOrders to DTOs
func ToPurchaseOrderDTOs(orders []domain.PurchaseOrder) []domain.PurchaseOrderDTO {
	dtos := make([]domain.PurchaseOrderDTO, len(orders))
	for i := range orders {
		dtos[i] = ToPurchaseOrderDTO(&orders[i])
	}
	return dtos
}

// ToDeliveryOrderDTO converts DeliveryOrder to DeliveryOrderDTO
func ToDeliveryOrderDTO(order *domain.DeliveryOrder) domain.DeliveryOrderDTO {
	dto := domain.DeliveryOrderDTO{
		ID:              order.ID,
		Number:          order.Number,
		PurchaseOrderID: order.PurchaseOrderID,
		ClientID:        order.ClientID,
		ClientName:      order.ClientName,
		DeliveryDate:    order.DeliveryDate.Format(timeFormat),
		DeliveryTime:    order.DeliveryTime,
		DeliveryAddress: order.DeliveryAddress,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt.Format(timeFormat),
		UpdatedAt:       order.UpdatedAt.Format(timeFormat),
	}

	// A delivery mirrors the goods and value of its source order.
	if order.PurchaseOrder != nil {
		dto.PurchaseOrderNumber = order.PurchaseOrder.Number
		dto.Items = make([]domain.PurchaseOrderItemDTO, len(order.PurchaseOrder.Items))
		for i, item := range order.PurchaseOrder.Items {
			dto.Items[i] = domain.PurchaseOrderItemDTO{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				Quantity:    item.Quantity,
				Price:       item.Price,
				LineTotal:   domain.RoundAmount(float64(item.Quantity) * item.Price),
			}
		}
		dto.Total = domain.RoundAmount(order.PurchaseOrder.Totals().Total)
	}

	if order.Verification != nil {
		dto.Verification = &domain.DeliveryVerificationDTO{
			DriverName:    order.Verification.DriverName,
			DriverPhone:   order.Verification.DriverPhone,
			ReceiverName:  order.Verification.ReceiverName,
			ReceiverPhone: order.Verification.ReceiverPhone,
			Notes:         order.Verification.Notes,
			ImageFileID:   order.Verification.ImageFileID,
			VerifiedAt:    order.Verification.VerifiedAt.Format(timeFormat),
			VerifiedBy:    order.Verification.VerifiedBy,
		}
	}

	return dto
}

// ToDeliveryOrderDTOs converts a slice of DeliveryOrders to DTOs
func ToDeliveryOrderDTOs(orders []domain.DeliveryOrder) []domain.DeliveryOrderDTO {
	dtos := make([]domain.DeliveryOrderDTO, len(orders))
	for i := range orders {
		dtos[i] = ToDeliveryOrderDTO(&orders[i])
	}
	return dtos
}

// ToInvoiceDTO converts Invoice to InvoiceDTO
func ToInvoiceDTO(invoice *domain.Invoice) domain.InvoiceDTO {
	dto := domain.InvoiceDTO{
		ID:               invoice.ID,
		Number:           invoice.Number,
		ClientID:         invoice.ClientID,
		ClientName:       invoice.ClientName,
		InvoiceDate:      invoice.InvoiceDate.Format(timeFormat),
		DueDate:          invoice.DueDate.Format(timeFormat),
		Description:      invoice.Description,
		TotalConsumption: invoice.TotalConsumption,
		TotalAmount:      invoice.TotalAmount,
		FormattedAmount:  FormatAmount(invoice.TotalAmount),
		Status:           invoice.Status,
		Overdue:          invoice.Status == domain.InvoiceStatusUnpaid && invoice.DueDate.Before(time.Now()),
		CreatedAt:        invoice.CreatedAt.Format(timeFormat),
		UpdatedAt:        invoice.UpdatedAt.Format(timeFormat),
	}

	if invoice.PaidAt != nil {
		paidAt := invoice.PaidAt.Format(timeFormat)
		dto.PaidAt = &paidAt
	}

	return dto
}

// ToInvoiceDTOs converts a slice of Invoices to DTOs
func ToInvoiceDTOs(invoices []domain.Invoice) []domain.InvoiceDTO {
	dtos := make([]domain.InvoiceDTO, len(invoices))
	for i := range invoices {
		dtos[i] = ToInvoiceDTO(&invoices[i])
	}
	return dtos
}

// ToAlertDTO converts Alert to AlertDTO
func ToAlertDTO(alert *domain.Alert) domain.AlertDTO {
	dto := domain.AlertDTO{
		ID:          alert.ID,
		Number:      alert.Number,
		Description: alert.Description,
		AlertType:   alert.AlertType,
		Severity:    alert.Severity,
		Status:      alert.Status,
		ClientID:    alert.ClientID,
		StartDate:   alert.StartDate.Format(timeFormat),
		ResolvedBy:  alert.ResolvedBy,
		Notes:       alert.Notes,
		CreatedAt:   alert.CreatedAt.Format(timeFormat),
		UpdatedAt:   alert.UpdatedAt.Format(timeFormat),
	}

	if alert.Client != nil {
		dto.ClientName = alert.Client.Name
	}

	if alert.EndDate != nil {
		endDate := alert.EndDate.Format(timeFormat)
		dto.EndDate = &endDate
	}

	return dto
}

// ToAlertDTOs converts a slice of Alerts to DTOs
func ToAlertDTOs(alerts []domain.Alert) []domain.AlertDTO {
	dtos := make([]domain.AlertDTO, len(alerts))
	for i := range alerts {
		dtos[i] = ToAlertDTO(&alerts[i])
	}
	return dtos
}

// ToFileDTO converts File to FileDTO
func ToFileDTO(file *domain.File) domain.FileDTO {
	return domain.FileDTO{
		ID:          file.ID,
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Size:        file.Size,
		UploadedBy:  file.UploadedBy,
		CreatedAt:   file.CreatedAt.Format(timeFormat),
	}
}

// ToAuditLogDTO converts AuditLog to AuditLogDTO
func ToAuditLogDTO(log *domain.AuditLog) domain.AuditLogDTO {
	return domain.AuditLogDTO{
		ID:         log.ID,
		UserID:     log.UserID,
		UserEmail:  log.UserEmail,
		Action:     log.Action,
		EntityType: log.EntityType,
		EntityID:   log.EntityID,
		EntityName: log.EntityName,
		OldValues:  log.OldValues,
		NewValues:  log.NewValues,
		Metadata:   log.Metadata,
		IPAddress:  log.IPAddress,
		CreatedAt:  log.CreatedAt.Format(timeFormat),
	}
}

// ToAuditLogDTOs converts a slice of AuditLogs to DTOs
func ToAuditLogDTOs(logs []domain.AuditLog) []domain.AuditLogDTO {
	dtos := make([]domain.AuditLogDTO, len(logs))
	for i := range logs {
		dtos[i] = ToAuditLogDTO(&logs[i])
	}
	return dtos
}

// ToNumberSequenceDTO converts NumberSequence to NumberSequenceDTO
func ToNumberSequenceDTO(seq *domain.NumberSequence) domain.NumberSequenceDTO {
	return domain.NumberSequenceDTO{
		Prefix:       seq.Prefix,
		Year:         seq.Year,
		LastSequence: seq.LastSequence,
		UpdatedAt:    seq.UpdatedAt.Format(timeFormat),
	}
}

// ToNumberSequenceDTOs converts a slice of NumberSequences to DTOs
func ToNumberSequenceDTOs(sequences []domain.NumberSequence) []domain.NumberSequenceDTO {
	dtos := make([]domain.NumberSequenceDTO, len(sequences))
	for i := range sequences {
		dtos[i] = ToNumberSequenceDTO(&sequences[i])
	}
	return dtos
}

// FormatAmount renders a minor-unit rupiah amount with dot thousands
// separators, e.g. 1500000 becomes "Rp 1.500.000"
func FormatAmount(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if negative {
		return fmt.Sprintf("Rp -%s", out)
	}
	return fmt.Sprintf("Rp %s", out)
}
