package models

// Doctor is a care-provider document from the directory catalog. Created and
// updated by administrators, never by the emotion pipeline.
type Doctor struct {
	ID                string  `json:"doctor_id" bson:"_id"`
	Name              string  `json:"name" bson:"name"`
	Gender            string  `json:"gender" bson:"gender"`
	Mobile            int64   `json:"mobile" bson:"mobile"`
	Degree            string  `json:"degree" bson:"degree"`
	ConsultationPlace string  `json:"consultation_place" bson:"consultation_place"`
	AboutDoctor       string  `json:"about_doctor" bson:"about_doctor"`
	ServicesProvided  string  `json:"services_provided" bson:"services_provided"`
	Address           string  `json:"address" bson:"address"`
	Latitude          float64 `json:"latitude" bson:"latitude"`
	Longitude         float64 `json:"longitude" bson:"longitude"`
	Ratings           float64 `json:"ratings" bson:"ratings"`
	ProfilePic        string  `json:"profile_pic,omitempty" bson:"profile_pic,omitempty"`
	Created           int64   `json:"created" bson:"created"`
	Updated           int64   `json:"updated" bson:"updated"`
}
