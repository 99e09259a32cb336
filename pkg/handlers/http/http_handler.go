package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid json payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Project
	CreateProjectHandler Handler
	ListProjectsHandler  Handler
	GetProjectHandler    Handler
	ListEventsHandler    Handler

	// Document
	UploadDocumentHandler Handler
	ListDocumentsHandler  Handler
	GetDocumentHandler    Handler

	// Note
	CreateNoteHandler Handler
	ListNotesHandler  Handler

	// Transcript
	CreateTranscriptHandler Handler
	ListTranscriptsHandler  Handler

	// Export and brief
	ExportProjectHandler Handler
	CompileBriefHandler  Handler

	// Scout
	CreateFeedHandler    Handler
	ListFeedsHandler     Handler
	RefreshFeedsHandler  Handler
	ListFeedItemsHandler Handler

	// Version
	GetVersionHandler Handler
}
