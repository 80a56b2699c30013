package views

import (
	"context"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/assistant"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/middleware"
	users "github.com/AdamBeresnev/pbvsi-sulut/internal/user"
)

func GetStaff(ctx context.Context) *users.Staff {
	return middleware.GetAuthenticatedStaff(ctx)
}

// NewPage starts a page for the signed-in staff member, if any.
func NewPage(ctx context.Context, title, nav string) Page {
	return Page{Title: title, Nav: nav, Staff: GetStaff(ctx)}
}

// ChatPanel is the assistant widget state carried on every public page.
type ChatPanel struct {
	Greeting string
	Messages []assistant.Message
}
