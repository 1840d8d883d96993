package domain

// ImageCategory classifies an order image by its role in the tailoring job.
type ImageCategory string

const (
	ImageCategoryBefore      ImageCategory = "before"
	ImageCategoryAfter       ImageCategory = "after"
	ImageCategoryReference   ImageCategory = "reference"
	ImageCategoryInstruction ImageCategory = "instruction"
)

// ImageCategories is the closed set of accepted image categories.
var ImageCategories = map[ImageCategory]bool{
	ImageCategoryBefore:      true,
	ImageCategoryAfter:       true,
	ImageCategoryReference:   true,
	ImageCategoryInstruction: true,
}

// Valid reports whether the category is part of the closed set.
func (c ImageCategory) Valid() bool {
	return ImageCategories[c]
}

// AllowedImageContentTypes maps accepted image MIME types to their canonical
// file extension, used when the uploaded filename carries none.
var AllowedImageContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UserRole defines the two roles of the tailoring shop.
type UserRole string

const (
	RoleClient UserRole = "client"
	RoleAdmin  UserRole = "admin"
)

// OrderStatus represents the lifecycle of a tailoring order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatuses lists the accepted order statuses.
var ValidOrderStatuses = map[OrderStatus]bool{
	OrderStatusPending:    true,
	OrderStatusInProgress: true,
	OrderStatusReady:      true,
	OrderStatusCompleted:  true,
	OrderStatusCancelled:  true,
}

// OrderPriority represents how urgently an order should be handled.
type OrderPriority string

const (
	PriorityNormal OrderPriority = "normal"
	PriorityHigh   OrderPriority = "high"
	PriorityUrgent OrderPriority = "urgent"
)

// ValidOrderPriorities lists the accepted order priorities.
var ValidOrderPriorities = map[OrderPriority]bool{
	PriorityNormal: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// BookingStatus represents the lifecycle of a fitting appointment.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)
