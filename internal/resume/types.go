package resume

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PhotoPosition 控制头像在页眉中的水平对齐方式。
type PhotoPosition string

const (
	PhotoLeft   PhotoPosition = "left"
	PhotoCenter PhotoPosition = "center"
	PhotoRight  PhotoPosition = "right"
)

// Normalize 将未知取值回落为 center。
func (p PhotoPosition) Normalize() PhotoPosition {
	switch p {
	case PhotoLeft, PhotoCenter, PhotoRight:
		return p
	default:
		return PhotoCenter
	}
}

// PersonalInfo 是页眉与联系方式区域的数据来源。
type PersonalInfo struct {
	FullName      string        `json:"fullName"`
	Title         string        `json:"title"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Location      string        `json:"location"`
	Website       string        `json:"website"`
	LinkedIn      string        `json:"linkedin"`
	GitHub        string        `json:"github,omitempty"`
	Portfolio     string        `json:"portfolio,omitempty"`
	Photo         string        `json:"photo"` // data URI 或 user-assets 对象 key
	PhotoPosition PhotoPosition `json:"photoPosition,omitempty"`
}

type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

type Education struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Link      string `json:"link,omitempty"`
}

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	URL         string `json:"url"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

type Extracurricular struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Role         string `json:"role"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
	Link         string `json:"link,omitempty"`
}

// Certification 既可以是纯字符串，也可以是结构化对象。
// Plain 记录了原始形态，序列化时按原样写回。
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	Link   string `json:"link,omitempty"`
	Plain  bool   `json:"-"`
}

func (c *Certification) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		*c = Certification{Name: name, Plain: true}
		return nil
	}

	type plainCert Certification
	var v plainCert
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*c = Certification(v)
	c.Plain = false
	return nil
}

func (c Certification) MarshalJSON() ([]byte, error) {
	if c.Plain {
		return json.Marshal(c.Name)
	}
	type plainCert Certification
	return json.Marshal(plainCert(c))
}

// Label 返回用于展示的一行文本。
func (c Certification) Label() string {
	parts := []string{strings.TrimSpace(c.Name)}
	if issuer := strings.TrimSpace(c.Issuer); issuer != "" {
		parts = append(parts, issuer)
	}
	if date := strings.TrimSpace(c.Date); date != "" {
		parts = append(parts, date)
	}
	if parts[0] == "" {
		parts = parts[1:]
	}
	return strings.Join(parts, " · ")
}

// Data 是用户填写的完整简历内容。
// 渲染期间视为只读快照。
type Data struct {
	PersonalInfo    PersonalInfo      `json:"personalInfo"`
	Summary         string            `json:"summary"`
	Experience      []Experience      `json:"experience"`
	Education       []Education       `json:"education"`
	Projects        []Project         `json:"projects"`
	Extracurricular []Extracurricular `json:"extracurricular"`
	Skills          []string          `json:"skills"`
	Languages       []string          `json:"languages"`
	Certifications  []Certification   `json:"certifications"`
}

// Default 返回全空的初始简历。
func Default() Data {
	return Data{
		PersonalInfo:    PersonalInfo{PhotoPosition: PhotoCenter},
		Experience:      []Experience{},
		Education:       []Education{},
		Projects:        []Project{},
		Extracurricular: []Extracurricular{},
		Skills:          []string{},
		Languages:       []string{},
		Certifications:  []Certification{},
	}
}

// Normalize 合并默认值：nil 列表置空，头像位置回落为 center。
func (d Data) Normalize() Data {
	d.PersonalInfo.PhotoPosition = d.PersonalInfo.PhotoPosition.Normalize()
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Extracurricular == nil {
		d.Extracurricular = []Extracurricular{}
	}
	d.Skills = compactStrings(d.Skills)
	d.Languages = compactStrings(d.Languages)
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	return d
}

// IsEmpty 判断简历是否完全没有任何内容。
func (d Data) IsEmpty() bool {
	p := d.PersonalInfo
	for _, s := range []string{
		p.FullName, p.Title, p.Email, p.Phone, p.Location,
		p.Website, p.LinkedIn, p.GitHub, p.Portfolio, p.Photo, d.Summary,
	} {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return len(d.Experience) == 0 &&
		len(d.Education) == 0 &&
		len(d.Projects) == 0 &&
		len(d.Extracurricular) == 0 &&
		len(compactStrings(d.Skills)) == 0 &&
		len(compactStrings(d.Languages)) == 0 &&
		len(d.Certifications) == 0
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
