package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/nav"
	"github.com/desertthunder/bingeverse/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgHomeLoaded MsgKind = iota
	MsgGenresLoaded
	MsgSectionLoaded
	MsgDetailLoaded
	MsgBrowserOpened
	MsgFeaturedTick
)

type genresPayload struct {
	genres []models.Genre
	err    error
}

// sectionPayload carries the ticket its fetch was issued with; stale tickets are dropped on arrival.
type sectionPayload struct {
	ticket nav.Ticket
	result tasks.SectionResult
}

type detailPayload struct {
	ticket nav.Ticket
	detail *models.MovieDetail
	err    error
}

// homeLoadedMsg is the constructor for [MsgHomeLoaded]
func homeLoadedMsg(result *tasks.HomeResult) Msg {
	return Msg{kind: MsgHomeLoaded, data: result}
}

// genresLoadedMsg is the constructor for [MsgGenresLoaded]
func genresLoadedMsg(genres []models.Genre, err error) Msg {
	return Msg{kind: MsgGenresLoaded, data: genresPayload{genres, err}}
}

// sectionLoadedMsg is the constructor for [MsgSectionLoaded]
func sectionLoadedMsg(ticket nav.Ticket, result tasks.SectionResult) Msg {
	return Msg{kind: MsgSectionLoaded, data: sectionPayload{ticket, result}}
}

// detailLoadedMsg is the constructor for [MsgDetailLoaded]
func detailLoadedMsg(ticket nav.Ticket, detail *models.MovieDetail, err error) Msg {
	return Msg{kind: MsgDetailLoaded, data: detailPayload{ticket, detail, err}}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(err error) Msg {
	return Msg{kind: MsgBrowserOpened, data: err}
}

// featuredTickMsg is the constructor for [MsgFeaturedTick]
func featuredTickMsg() Msg {
	return Msg{kind: MsgFeaturedTick}
}
