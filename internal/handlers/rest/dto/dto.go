// Package dto - JSON-представления запросов и ответов REST API.
// Суммы передаются строкой с двумя знаками после точки ("12.50").
package dto

import "time"

type PingResponse struct {
	Message    string    `json:"message"`
	ServerTime time.Time `json:"server_time"`
}

type CreateResponse struct {
	ID int64 `json:"id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Session struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	CourierID *int64 `json:"courier_id,omitempty"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Session   Session   `json:"session"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Approval  string    `json:"approval"`
	CourierID *int64    `json:"courier_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ApprovalRequest - решение менеджера: "approved" или "rejected".
type ApprovalRequest struct {
	Decision string `json:"decision"`
}

type Delivery struct {
	ID              int64      `json:"id"`
	OrderNumber     string     `json:"order_number"`
	CustomerID      *int64     `json:"customer_id,omitempty"`
	CustomerName    string     `json:"customer_name"`
	CourierID       int64      `json:"courier_id"`
	PaymentMethod   string     `json:"payment_method"`
	Subtotal        string     `json:"subtotal"`
	DeliveryFee     string     `json:"delivery_fee"`
	Total           string     `json:"total"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	DepartureTime   *time.Time `json:"departure_time,omitempty"`
	DeliveredTime   *time.Time `json:"delivered_time,omitempty"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
	// Duration - зафиксированная длительность, только для delivered.
	Duration string `json:"duration,omitempty"`
	// Elapsed - живое время в пути, только для en_route с выездом.
	Elapsed            string   `json:"elapsed,omitempty"`
	AllowedTransitions []string `json:"allowed_transitions"`
}

type DeliveryCreate struct {
	OrderNumber   string `json:"order_number"`
	CustomerID    int64  `json:"customer_id"`
	CourierID     int64  `json:"courier_id"`
	PaymentMethod string `json:"payment_method"`
	Subtotal      string `json:"subtotal"`
	DeliveryFee   string `json:"delivery_fee"`
}

// DeliveryReplace - полная запись для ручной правки, поля не из запроса обнуляются.
type DeliveryReplace struct {
	OrderNumber     string     `json:"order_number"`
	CustomerID      int64      `json:"customer_id"`
	CustomerName    string     `json:"customer_name"`
	CourierID       int64      `json:"courier_id"`
	PaymentMethod   string     `json:"payment_method"`
	Subtotal        string     `json:"subtotal"`
	DeliveryFee     string     `json:"delivery_fee"`
	Status          string     `json:"status"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	DepartureTime   *time.Time `json:"departure_time,omitempty"`
	DeliveredTime   *time.Time `json:"delivered_time,omitempty"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
}

type DeliveryStatusRequest struct {
	Status string `json:"status"`
}

type CourierGroup struct {
	CourierID  int64      `json:"courier_id"`
	Deliveries []Delivery `json:"deliveries"`
}

// Board - вид доски: активные по курьерам и завершенные.
type Board struct {
	Active   []CourierGroup `json:"active"`
	Finished []Delivery     `json:"finished"`
}

type Position struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Courier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Position  *Position `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourierLoad - курьер и число его незавершенных доставок на доске.
type CourierLoad struct {
	Courier
	ActiveDeliveries int `json:"active_deliveries"`
}

type CourierCreate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CourierUpdate struct {
	ID    int64   `json:"id"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type PositionReport struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	ReportedAt *time.Time `json:"reported_at,omitempty"`
}

type Earnings struct {
	CourierID int64  `json:"courier_id"`
	Date      string `json:"date"`
	Timezone  string `json:"timezone"`
	Total     string `json:"total"`
}

type Customer struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Street       string    `json:"street"`
	Number       string    `json:"number"`
	Neighborhood string    `json:"neighborhood"`
	Address      string    `json:"address"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type CustomerCreate struct {
	Name         string  `json:"name"`
	Street       string  `json:"street"`
	Number       string  `json:"number"`
	Neighborhood string  `json:"neighborhood"`
	Phone        *string `json:"phone,omitempty"`
}

type CustomerUpdate struct {
	ID           int64   `json:"id"`
	Name         *string `json:"name,omitempty"`
	Street       *string `json:"street,omitempty"`
	Number       *string `json:"number,omitempty"`
	Neighborhood *string `json:"neighborhood,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

type CourierReport struct {
	CourierID       int64  `json:"courier_id"`
	Delivered       int    `json:"delivered"`
	Cancelled       int    `json:"cancelled"`
	FeesTotal       string `json:"fees_total"`
	SubtotalTotal   string `json:"subtotal_total"`
	AverageDuration string `json:"average_duration"`
}

type PaymentMethodReport struct {
	Method string `json:"method"`
	Orders int    `json:"orders"`
	Total  string `json:"total"`
}

type Report struct {
	From           time.Time             `json:"from"`
	To             time.Time             `json:"to"`
	Couriers       []CourierReport       `json:"couriers"`
	PaymentMethods []PaymentMethodReport `json:"payment_methods"`
	Delivered      int                   `json:"delivered"`
	Cancelled      int                   `json:"cancelled"`
	FeesTotal      string                `json:"fees_total"`
	SubtotalTotal  string                `json:"subtotal_total"`
}
