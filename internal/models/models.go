package models

import "time"

// RawListing is one scraped job posting exactly as it appears on the board.
// A listing is immutable once created; a later fetch of the same Job URL
// supersedes it during the merge step instead of mutating it.
// CSV tags match the column names of all_job_listings.csv.
type RawListing struct {
	DatePosted      string `csv:"Date Posted" json:"date_posted"`
	JobTitle        string `csv:"Job Title" json:"job_title"`
	JobURL          string `csv:"Job URL" json:"job_url"`
	CompanyName     string `csv:"Company Name" json:"company_name"`
	CompanyURL      string `csv:"Company URL" json:"company_url"`
	Salary          string `csv:"Salary" json:"salary"`
	Location        string `csv:"Location" json:"location"`
	ShortInfo       string `csv:"Short Info" json:"short_info"`
	FullDescription string `csv:"Full Description" json:"full_description"`
	Category        string `csv:"Category" json:"category"`
}

// EnrichedRecord is the structured output of LLM field extraction for one
// listing. The enriched CSV has no identity column; rows are positional.
type EnrichedRecord struct {
	Date               string `csv:"Date" json:"date"`
	Location           string `csv:"Location" json:"location"`
	Role               string `csv:"Role" json:"role"`
	ProjectDescription string `csv:"Project description" json:"project_description"`
	Responsibilities   string `csv:"Responsibilities" json:"responsibilities"`
	Requirements       string `csv:"Requirements" json:"requirements"`
	AdditionalPoints   string `csv:"Additional points" json:"additional_points"`
	Category           string `csv:"Category" json:"category"`
}

// Narrative joins the four free-text fields into one string. Records with
// an empty narrative carry nothing worth indexing and are skipped.
func (r EnrichedRecord) Narrative() string {
	out := ""
	for _, part := range []string{r.ProjectDescription, r.Responsibilities, r.Requirements, r.AdditionalPoints} {
		if part == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += part
	}
	return out
}

type ChatRoom struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// 'omitempty' prevents infinite loops when fetching a Room -> Messages -> Room -> ...
	Messages []ChatMessage `json:"messages,omitempty"`
}

type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ChatRoomID  uint   `json:"chat_room_id"`
	UserMessage string `gorm:"type:text" json:"user_message"`
	BotResponse string `gorm:"type:text" json:"bot_response"`
}
