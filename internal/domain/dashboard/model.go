package dashboard

// Stats is the aggregate snapshot rendered by the dashboard endpoint.
type Stats struct {
	TotalPatients       int            `json:"total_patients"`
	ActivePatients      int            `json:"active_patients"`
	StaffCount          int            `json:"staff_count"`
	DeliveryPersonCount int            `json:"delivery_person_count"`
	PreparationStatus   map[string]int `json:"preparation_status"`
	DeliveryStatus      map[string]int `json:"delivery_status"`
	DeliveredToday      int            `json:"delivered_today"`
}
