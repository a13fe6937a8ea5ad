package conf

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Client is the user-facing configuration persisted in sqlite.
type Client struct {
	LangPair             string `json:"langPair" validate:"required,len=5,contains=-"`
	QuizOptionsCount     int    `json:"quizOptionsCount" validate:"min=2,max=8"`
	NextQuestionDelaySec int    `json:"nextQuestionDelaySec" validate:"min=0,max=60"`
	MaxSkips             int    `json:"maxSkips" validate:"min=1,max=100"`
	MaxOptionRounds      int    `json:"maxOptionRounds" validate:"min=1,max=50"`
}

func ValidClientConf(c *Client) error {
	return validate.Struct(c)
}
