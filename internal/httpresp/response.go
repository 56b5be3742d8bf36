package httpresp

import "github.com/gin-gonic/gin"

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ListData[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(200, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(201, Envelope{Success: true, Message: message, Data: data})
}

func List[T any](c *gin.Context, message string, items []T) {
	c.JSON(200, Envelope{
		Success: true,
		Message: message,
		Data:    ListData[T]{Items: items, Total: len(items)},
	})
}
