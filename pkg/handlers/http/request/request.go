package request

type CreateProjectRequest struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Classification string                 `json:"classification"`
	Settings       map[string]interface{} `json:"settings"`
}

type CreateNoteRequest struct {
	Text  string `json:"text"`
	Actor string `json:"actor"`
}

// CreateTranscriptRequest accepts either pre-transcribed text or a
// source reference to hand to the transcription engine. Exactly one of
// Text and SourceRef must be set.
type CreateTranscriptRequest struct {
	Text      string `json:"text"`
	SourceRef string `json:"source_ref"`
	Actor     string `json:"actor"`
}

type CreateFeedRequest struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Enabled *bool  `json:"enabled"`
}

type CompileBriefRequest struct {
	Instructions string `json:"instructions"`
}
