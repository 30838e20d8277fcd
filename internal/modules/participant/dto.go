package participant

type CreateParticipantRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
