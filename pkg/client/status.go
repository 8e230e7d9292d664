package client

// statusLabels maps each booking status to its user-facing Spanish label.
var statusLabels = map[string]string{
	"PENDING":   "Pendiente",
	"CONFIRMED": "Confirmada",
	"CANCELLED": "Cancelada",
	"REJECTED":  "Rechazada",
	"ON_HOLD":   "En Espera",
	"REFUNDED":  "Reembolsada",
	"NO_SHOW":   "No se Presentó",
	"PAID":      "Pagada",
}

var statusClasses = map[string]string{
	"PENDING":   "pending",
	"CONFIRMED": "confirmed",
	"CANCELLED": "cancelled",
	"REJECTED":  "rejected",
	"ON_HOLD":   "on-hold",
	"REFUNDED":  "refunded",
	"NO_SHOW":   "no-show",
	"PAID":      "paid",
}

// BookingStatusLabel returns the display label for a booking status.
// Unknown values get an explicit fallback rather than an empty string.
func BookingStatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return "Desconocido"
}

// BookingStatusClass returns the styling category for a booking status.
func BookingStatusClass(status string) string {
	if class, ok := statusClasses[status]; ok {
		return class
	}
	return "status-unknown"
}

// PayableStatuses lists the statuses for which a "Pay" action applies.
func PayableStatuses() []string {
	return []string{"PENDING", "ON_HOLD", "CONFIRMED"}
}

// CanPay reports whether a booking in the given status accepts payments.
func CanPay(status string) bool {
	switch status {
	case "PENDING", "ON_HOLD", "CONFIRMED":
		return true
	}
	return false
}

// CanCancel reports whether the user may cancel a booking in the given
// status. Only pending bookings can be withdrawn.
func CanCancel(status string) bool {
	return status == "PENDING"
}
