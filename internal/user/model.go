package user

import (
	"strconv"
	"strings"
	"time"

	"github.com/ferdiebergado/devlink/internal/model"
)

type User struct {
	model.Model

	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Nick         string
	Bio          *string
	Age          *int
	IsActive     bool
}

type SkillLevel int

const (
	Beginner SkillLevel = iota + 1
	Intermediate
	Advanced
	Expert
)

var skillLevelNames = map[SkillLevel]string{
	Beginner:     "Beginner",
	Intermediate: "Intermediate",
	Advanced:     "Advanced",
	Expert:       "Expert",
}

func (l SkillLevel) String() string {
	if name, ok := skillLevelNames[l]; ok {
		return name
	}
	return "SkillLevel(" + strconv.Itoa(int(l)) + ")"
}

// ParseSkillLevel accepts a level name (case-insensitive) or its number.
// Anything else yields Beginner.
func ParseSkillLevel(s string) SkillLevel {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if level := SkillLevel(n); level >= Beginner && level <= Expert {
			return level
		}
		return Beginner
	}

	for level, name := range skillLevelNames {
		if strings.EqualFold(name, s) {
			return level
		}
	}
	return Beginner
}

type Skill struct {
	ID          int64
	Name        string
	Description *string
	Category    string
}

type UserSkill struct {
	Skill
	Level   SkillLevel
	AddedAt time.Time
}

type Interest struct {
	ID          int64
	Name        string
	Description *string
	CategoryID  *int64
}

type Category struct {
	ID          int64
	Name        string
	Description *string
	Type        string
}

type Photo struct {
	UserID      int64
	ContentType string
	Data        []byte
	UploadedAt  time.Time
}

// Profile is a user with its skills, interests and the category catalog.
type Profile struct {
	User
	Skills     []UserSkill
	Interests  []Interest
	Categories []Category
}
