package venueservice

// Venue модель площадки из VenueService (отель, коворкинг и т.д.)
type Venue struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Timezone   string  `json:"timezone"`
	IsActive   bool    `json:"is_active"`
	ManagerIDs []int64 `json:"manager_ids"` // пользователи с правами управления площадкой
}

// IsManagedBy возвращает true, если пользователь является менеджером площадки
func (v *Venue) IsManagedBy(userID int64) bool {
	for _, id := range v.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Treatment модель процедуры из VenueService
type Treatment struct {
	ID              int64    `json:"id"`
	VenueID         int64    `json:"venue_id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	LeadTimeMinutes int      `json:"lead_time_minutes"` // минимальное время до начала процедуры
	IsActive        bool     `json:"is_active"`
}

// ErrorResponse модель ошибки от VenueService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
