package models

import "time"

// Model slugs used in admin URLs
const (
	SlugAuthor      = "author"
	SlugQuestion    = "question"
	SlugChoice      = "choice"
	SlugAuthorClone = "authorclone"
	SlugUser        = "user"
)

// Domain types

type Author struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func (a Author) String() string { return a.Name }

type Question struct {
	ID           int64     `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
	RefAuthorID  int64     `json:"ref_author_id"`
	CreatedDate  time.Time `json:"created_date"`
	UpdatedDate  time.Time `json:"updated_date"`

	// Joined from author
	AuthorName string `json:"author_name,omitempty"`
}

func (q Question) String() string { return q.QuestionText }

// HasBeenPublished reports whether the calendar date of PubDate is strictly
// before the calendar date of now. The time of day is ignored.
func (q Question) HasBeenPublished(now time.Time) bool {
	py, pm, pd := q.PubDate.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	pub := time.Date(py, pm, pd, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return pub.Before(today)
}

type Choice struct {
	ID          int64     `json:"id"`
	QuestionID  int64     `json:"question_id"`
	ChoiceText  string    `json:"choice_text"`
	Votes       int       `json:"votes"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`

	// Joined from question and author
	QuestionText string `json:"question_text,omitempty"`
	AuthorID     int64  `json:"author_id,omitempty"`
	AuthorName   string `json:"author_name,omitempty"`
}

func (c Choice) String() string { return c.ChoiceText }

type AuthorClone struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func (a AuthorClone) String() string { return a.Name }

type AdminUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedDate  time.Time `json:"created_date"`
}

// ChartPoint is one day of the author change list chart.
type ChartPoint struct {
	Date time.Time `json:"date"`
	Y    int       `json:"y"`
}

// Form types

type AuthorForm struct {
	Name string `validate:"required,max=200"`
}

type QuestionForm struct {
	QuestionText string    `validate:"required,max=200"`
	PubDate      time.Time `validate:"required"`
	RefAuthorID  int64     `validate:"required,gt=0"`
}

type ChoiceForm struct {
	QuestionID int64  `validate:"required,gt=0"`
	ChoiceText string `validate:"required,max=200"`
	Votes      int    `validate:"min=0"`
}

// InlineQuestionForm is one row of the questions inline on the author page.
// ID is zero for extra rows.
type InlineQuestionForm struct {
	ID           int64
	QuestionText string    `validate:"required,max=200"`
	PubDate      time.Time `validate:"required"`
	Delete       bool      `validate:"-"`
}
