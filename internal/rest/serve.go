// Copyright (C) 2026 The defringe authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/defringe/defringe/internal/defringe"
	"github.com/defringe/defringe/internal/frame"
	"github.com/defringe/defringe/internal/logf"
)

// Starts the REST API on the given port and serves until terminated
func Serve(port int) error {
	return newRouter().Run(fmt.Sprintf(":%d", port))
}

func newRouter() *gin.Engine {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/ping", getPing)
			v1.POST("/correct", postCorrect)
		}
	}
	return r
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

// Corrects chromatic aberration on an uploaded image. Expects a multipart
// form with the image under "image" and optional parameter overrides as a
// JSON object under "params"; replies with the corrected image as PNG
func postCorrect(c *gin.Context) {
	params := defringe.NewParams()
	if raw := c.PostForm("params"); raw != "" {
		if err := json.Unmarshal([]byte(raw), params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	img, err := frame.ReadImage(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logf.Printf("Correcting %dx%d upload '%s'\n", img.Width, img.Height, fileHeader.Filename)
	out, err := defringe.Correct(img, params, logf.Writer())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buf := &bytes.Buffer{}
	if err := out.WritePNG(buf, frame.WriteOptions{}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
