package bootstrap

import "github.com/21R01A7263/docGPT/handlers"

type Handlers struct {
	DocHandler  *handlers.DocHandler
	ChatHandler *handlers.ChatHandler
	PageHandler *handlers.PageHandler
	WSHandler   *handlers.WSHandler
}

func NewHandlers(services *Services, infra *Infrastructure, maxFileSize int64) *Handlers {
	return &Handlers{
		DocHandler:  handlers.NewDocHandler(services.Session, maxFileSize),
		ChatHandler: handlers.NewChatHandler(services.Session),
		PageHandler: handlers.NewPageHandler(services.Session),
		WSHandler:   handlers.NewWSHandler(infra.Events, services.Session),
	}
}
