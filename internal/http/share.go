package http

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/database/records"
	"github.com/naatacademy/naat-api/internal/entities"
)

const unknownWriter = "نامعلوم مصنف"

// sharePage is the preview social networks scrape when a kalaam link is
// shared. html/template escapes every interpolated value.
var sharePage = template.Must(template.New("share").Parse(`<!DOCTYPE html>
<html lang="ur" dir="rtl">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <meta name="description" content="{{.Title}} by {{.Writer}} on {{.SiteName}}">
  <meta property="og:title" content="{{.Title}}">
  <meta property="og:description" content="by {{.Writer}} on {{.SiteName}}">
  <meta property="og:type" content="article">
  <meta property="og:url" content="{{.URL}}">
  <meta property="og:site_name" content="{{.SiteName}}">
  <style>
    body { font-family: 'Noto Nastaliq Urdu', serif; text-align: right; direction: rtl; margin: 2em; }
    .content { background: #f9f9f9; padding: 20px; border-radius: 10px; }
  </style>
</head>
<body>
  <div class="content">
    <h1>{{.Title}}</h1>
    <p><strong>مصنف:</strong> {{.Writer}}</p>
    <p><em>مزید کلام کے لیے وزٹ کریں:</em> <a href="{{.BaseURL}}" target="_blank">{{.SiteName}}</a></p>
  </div>
</body>
</html>
`))

type sharePageData struct {
	Title    string
	Writer   string
	URL      string
	BaseURL  string
	SiteName string
}

// KalaamGetter provides read access to kalaam.
type KalaamGetter interface {
	Get(id uint) (*entities.Kalaam, error)
}

type ShareController struct {
	kalaam  KalaamGetter
	baseURL string
}

func NewShareController(kalaam KalaamGetter, baseURL string) *ShareController {
	return &ShareController{kalaam: kalaam, baseURL: strings.TrimRight(baseURL, "/")}
}

// ShareKalaam handles GET /share/kalaam/:id
func (sc *ShareController) ShareKalaam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid kalaam id")
		return
	}

	kalaam, err := sc.kalaam.Get(uint(id))
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			c.String(http.StatusNotFound, "Kalaam not found")
			return
		}
		respondInternalError(c, err, "share kalaam")
		return
	}

	writer := strings.TrimSpace(kalaam.WriterName)
	if writer == "" {
		writer = unknownWriter
	}

	data := sharePageData{
		Title:    kalaam.Title,
		Writer:   writer,
		URL:      sc.baseURL + "/share/kalaam/" + strconv.FormatUint(id, 10),
		BaseURL:  sc.baseURL,
		SiteName: siteName(sc.baseURL),
	}

	var page bytes.Buffer
	if err := sharePage.Execute(&page, data); err != nil {
		respondInternalError(c, err, "render share page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
}

// siteName turns https://naatacademy.com into Naatacademy.com.
func siteName(baseURL string) string {
	host := baseURL
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return ""
	}
	return strings.ToUpper(host[:1]) + host[1:]
}

func (sc *ShareController) RegisterRoutes(router gin.IRouter) {
	router.GET("/share/kalaam/:id", sc.ShareKalaam)
}
