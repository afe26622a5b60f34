// ABOUTME: Server-rendered HTML for the public board and per-user admin page.
// ABOUTME: Built with gomponents; browser behaviour lives in embedded assets.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/pushups/internal/models"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const defaultTitle = "Pushups"

// adminUser is injected into the admin page as window.__USER__.
type adminUser struct {
	adminInfo
	Secret string `json:"secret"`
}

func page(title string, head []Node, children ...Node) Node {
	return Doctype(
		HTML(
			Attr("lang", "en"),
			Head(
				Meta(Attr("charset", "utf-8")),
				Meta(Attr("name", "viewport"), Attr("content", "width=device-width, initial-scale=1")),
				TitleEl(Text(title)),
				Link(Attr("rel", "stylesheet"), Href("/assets/style.css")),
				Group(head),
			),
			Body(children...),
		),
	)
}

func boardPage(ch *models.Challenge) Node {
	title := defaultTitle
	if ch.Title != nil && *ch.Title != "" {
		title = *ch.Title
	}

	var subtitle Node
	if ch.HasWindow() {
		subtitle = P(Class("window"), Textf("%s to %s", ch.Start, ch.End))
	}
	var goal Node
	if ch.Goal != nil {
		goal = P(Class("goal"), Textf("Goal: %d", *ch.Goal))
	}

	return page(title, nil,
		H1(ID("title"), Text(title)),
		subtitle,
		goal,
		Div(ID("board"), Class("board")),
		Script(Src("/assets/board.js")),
	)
}

func adminPage(user adminUser) (Node, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	return page(user.Person,
		[]Node{Script(Raw("window.__USER__ = " + string(payload) + ";"))},
		H1(ID("person-name"), Text(user.Person)),
		P(Text("Challenge total: "), Span(ID("current-total"), Textf("%d", user.ChallengeTotal))),
		P(Class("all-time"), Text("All time: "), Span(ID("all-time-total"), Textf("%d", user.Total))),
		Div(Class("entry"),
			Input(ID("count-input"), Type("number"), Attr("min", "1"), Attr("max", "250"), Value("50")),
			Button(ID("submit-btn"), Type("button"), Text("Add")),
		),
		P(ID("message"), Class("message")),
		H2(Text("Recent")),
		Ul(ID("history")),
		Script(Src("/assets/admin.js")),
	), nil
}

func notFoundPage() Node {
	return page("Not found", nil, H1(Text("Not found")))
}

func (s *Server) render(c *gin.Context, status int, node Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := node.Render(c.Writer); err != nil {
		s.logger.Error("render page", "err", err, "request_id", c.GetString(requestIDKey))
	}
}

func (s *Server) boardPage(c *gin.Context) {
	ch, err := s.repo.GetChallenge()
	if err != nil {
		s.internalError(c, "get challenge", err)
		return
	}
	s.render(c, http.StatusOK, boardPage(ch))
}

func (s *Server) adminPage(c *gin.Context) {
	secret := c.Param("secret")
	user, err := s.repo.GetUserBySecret(secret)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.render(c, http.StatusNotFound, notFoundPage())
			return
		}
		s.internalError(c, "user by secret", err)
		return
	}

	info, err := s.adminInfoFor(user)
	if err != nil {
		s.internalError(c, "admin info", err)
		return
	}
	node, err := adminPage(adminUser{adminInfo: *info, Secret: secret})
	if err != nil {
		s.internalError(c, "admin page", err)
		return
	}
	s.render(c, http.StatusOK, node)
}
