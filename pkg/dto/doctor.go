package dto

type CreateDoctorRequest struct {
	Name              string  `json:"name" binding:"required"`
	Gender            string  `json:"gender" binding:"required"`
	Mobile            int64   `json:"mobile"`
	Degree            string  `json:"degree" binding:"required"`
	ConsultationPlace string  `json:"consultation_place" binding:"required"`
	AboutDoctor       string  `json:"about_doctor"`
	ServicesProvided  string  `json:"services_provided"`
	Address           string  `json:"address"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Ratings           float64 `json:"ratings"`
}

type UpdateDoctorRequest struct {
	Name              *string  `json:"name"`
	Gender            *string  `json:"gender"`
	Mobile            *int64   `json:"mobile"`
	Degree            *string  `json:"degree"`
	ConsultationPlace *string  `json:"consultation_place"`
	AboutDoctor       *string  `json:"about_doctor"`
	ServicesProvided  *string  `json:"services_provided"`
	Address           *string  `json:"address"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Ratings           *float64 `json:"ratings"`
	ProfilePic        *string  `json:"profile_pic"`
}
