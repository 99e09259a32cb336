package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/arbetsytan/arbetsytan/pkg/config"
	handlers "github.com/arbetsytan/arbetsytan/pkg/handlers/http"
	"github.com/arbetsytan/arbetsytan/pkg/middleware"
)

type (
	ApiServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	ApiServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewApiServer(di ApiServerDI) *ApiServer {
	return &ApiServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *ApiServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("starting api server")
	return s.router.Listen(addr)
}

func (s *ApiServer) setupRoutes() {
	v1 := s.router.Group("/api/v1",
		s.middlewareTransport.MetricsMiddleware.Middleware(),
		s.middlewareTransport.AuthMiddleware.Middleware(),
	)
	{
		v1.Get("/version", s.handlerTransport.GetVersionHandler.Handle)

		projects := v1.Group("/projects")
		{
			projects.Post("", s.handlerTransport.CreateProjectHandler.Handle)
			projects.Get("", s.handlerTransport.ListProjectsHandler.Handle)
			projects.Get("/:project_id", s.handlerTransport.GetProjectHandler.Handle)
			projects.Get("/:project_id/events", s.handlerTransport.ListEventsHandler.Handle)

			documents := projects.Group("/:project_id/documents")
			{
				documents.Post("", s.handlerTransport.UploadDocumentHandler.Handle)
				documents.Get("", s.handlerTransport.ListDocumentsHandler.Handle)
				documents.Get("/:document_id", s.handlerTransport.GetDocumentHandler.Handle)
			}

			notes := projects.Group("/:project_id/notes")
			{
				notes.Post("", s.handlerTransport.CreateNoteHandler.Handle)
				notes.Get("", s.handlerTransport.ListNotesHandler.Handle)
			}

			transcripts := projects.Group("/:project_id/transcripts")
			{
				transcripts.Post("", s.handlerTransport.CreateTranscriptHandler.Handle)
				transcripts.Get("", s.handlerTransport.ListTranscriptsHandler.Handle)
			}

			projects.Get("/:project_id/export", s.handlerTransport.ExportProjectHandler.Handle)
			projects.Post("/:project_id/brief", s.handlerTransport.CompileBriefHandler.Handle)
		}

		scout := v1.Group("/scout")
		{
			scout.Post("/feeds", s.handlerTransport.CreateFeedHandler.Handle)
			scout.Get("/feeds", s.handlerTransport.ListFeedsHandler.Handle)
			scout.Get("/feeds/:feed_id/items", s.handlerTransport.ListFeedItemsHandler.Handle)
			scout.Post("/refresh", s.handlerTransport.RefreshFeedsHandler.Handle)
		}
	}
}

func (s *ApiServer) Shutdown() error {
	return s.router.Shutdown()
}
