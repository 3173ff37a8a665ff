package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// adminShell is the minimal document the admin SPA boots from. Assets are
// served by the CDN in front of this service; the server only decides who
// gets the shell at all (see the page guard middleware).
const adminShell = `<!DOCTYPE html>
<html lang="zh-Hant">
<head>
  <meta charset="utf-8">
  <title>古蹟管理後台</title>
</head>
<body>
  <div id="app"></div>
  <script type="module" src="/assets/admin.js"></script>
</body>
</html>
`

// PageHandler serves the admin SPA shell.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) AdminShell(c echo.Context) error {
	return c.HTML(http.StatusOK, adminShell)
}
