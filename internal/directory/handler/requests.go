package handler

type ReportSpamRequest struct {
	Phone string `json:"phone"`
}

type AddContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
