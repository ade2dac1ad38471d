package folio

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/project"
)

// blockIndex parses the :index path parameter.
func blockIndex(c echo.Context) (int, error) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", project.ErrBlockIndex, c.Param("index"))
	}
	return i, nil
}

// attachment writes data as a named download.
func attachment(c echo.Context, name, contentType string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	c.Response().Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	return c.Blob(http.StatusOK, contentType, data)
}
