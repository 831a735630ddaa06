package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	PatientName        string     `db:"patient_name" json:"patient_name"`
	Diseases           []string   `db:"diseases" json:"diseases"`
	Allergies          []string   `db:"allergies" json:"allergies"`
	RoomNumber         string     `db:"room_number" json:"room_number"`
	BedNumber          string     `db:"bed_number" json:"bed_number"`
	FloorNumber        string     `db:"floor_number" json:"floor_number"`
	Age                int        `db:"age" json:"age"`
	Gender             string     `db:"gender" json:"gender"`
	ContactInformation string     `db:"contact_information" json:"contact_information"`
	EmergencyContact   string     `db:"emergency_contact" json:"emergency_contact"`
	AdditionalDetails  string     `db:"additional_details" json:"additional_details"`
	AdmissionDate      time.Time  `db:"admission_date" json:"admission_date"`
	DischargeDate      *time.Time `db:"discharge_date" json:"discharge_date,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// Genders a patient record accepts.
var Genders = []string{"Male", "Female", "Other"}

// UpdateInput carries a partial update; nil fields keep their stored value.
type UpdateInput struct {
	PatientName        *string    `json:"patient_name,omitempty"`
	Diseases           *[]string  `json:"diseases,omitempty"`
	Allergies          *[]string  `json:"allergies,omitempty"`
	RoomNumber         *string    `json:"room_number,omitempty"`
	BedNumber          *string    `json:"bed_number,omitempty"`
	FloorNumber        *string    `json:"floor_number,omitempty"`
	Age                *int       `json:"age,omitempty"`
	Gender             *string    `json:"gender,omitempty"`
	ContactInformation *string    `json:"contact_information,omitempty"`
	EmergencyContact   *string    `json:"emergency_contact,omitempty"`
	AdditionalDetails  *string    `json:"additional_details,omitempty"`
	AdmissionDate      *time.Time `json:"admission_date,omitempty"`
	DischargeDate      *time.Time `json:"discharge_date,omitempty"`
}

// Apply merges the supplied fields onto p.
func (in UpdateInput) Apply(p *Patient) {
	if in.PatientName != nil {
		p.PatientName = *in.PatientName
	}
	if in.Diseases != nil {
		p.Diseases = *in.Diseases
	}
	if in.Allergies != nil {
		p.Allergies = *in.Allergies
	}
	if in.RoomNumber != nil {
		p.RoomNumber = *in.RoomNumber
	}
	if in.BedNumber != nil {
		p.BedNumber = *in.BedNumber
	}
	if in.FloorNumber != nil {
		p.FloorNumber = *in.FloorNumber
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.ContactInformation != nil {
		p.ContactInformation = *in.ContactInformation
	}
	if in.EmergencyContact != nil {
		p.EmergencyContact = *in.EmergencyContact
	}
	if in.AdditionalDetails != nil {
		p.AdditionalDetails = *in.AdditionalDetails
	}
	if in.AdmissionDate != nil {
		p.AdmissionDate = *in.AdmissionDate
	}
	if in.DischargeDate != nil {
		p.DischargeDate = in.DischargeDate
	}
}
