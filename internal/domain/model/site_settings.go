package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// 設定の形を変えたら上げる
const SiteSettingsVersion = 1

type CardSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Sections struct {
	Home     string `json:"home"`
	Archive  string `json:"archive"`
	Admin    string `json:"admin"`
	Featured string `json:"featured,omitempty"`
	New      string `json:"new,omitempty"`
	Sale     string `json:"sale,omitempty"`
}

type NavigationLink struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
	Path string `json:"path" validate:"required,notblank,max=255"`
}

// サイト全体の見た目の設定（1件だけ）
type SiteSettings struct {
	Version         int              `json:"version"`
	SiteName        string           `json:"siteName"`
	SiteDescription string           `json:"siteDescription"`
	MainTitle       string           `json:"mainTitle"`
	MainDescription string           `json:"mainDescription"`
	ContactEmail    string           `json:"contactEmail"`
	ContactPhone    string           `json:"contactPhone"`
	HeaderImage     string           `json:"headerImage"`
	FooterText      string           `json:"footerText"`
	PrimaryColor    string           `json:"primaryColor"`
	SecondaryColor  string           `json:"secondaryColor"`
	CardSize        CardSize         `json:"cardSize"`
	ProductsPerPage int              `json:"productsPerPage"`
	Sections        Sections         `json:"sections"`
	NavigationLinks []NavigationLink `json:"navigationLinks"`

	// 知らないフィールドはここに残す（古い/新しいクライアント向け）
	Extra map[string]json.RawMessage `json:"extra,omitempty"`
}

// 起動時の初期値
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		Version:         SiteSettingsVersion,
		SiteName:        "KoBro",
		MainTitle:       "Кожаные изделия ручной работы KoBro",
		MainDescription: "Качественные изделия из натуральной кожи",
		CardSize:        CardSize{Width: 300, Height: 400},
		ProductsPerPage: 12,
		Sections: Sections{
			Home:    "Главная",
			Archive: "Архив изделий",
			Admin:   "Админ панель",
		},
		NavigationLinks: []NavigationLink{
			{Name: "Главная", Path: "/"},
			{Name: "Архив", Path: "/archive"},
		},
	}
}

func (s SiteSettings) Clone() SiteSettings {
	out := s
	if s.NavigationLinks != nil {
		out.NavigationLinks = append([]NavigationLink{}, s.NavigationLinks...)
	}
	if s.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

type CardSizePatch struct {
	Width  *int `json:"width" validate:"omitempty,min=1,max=4000"`
	Height *int `json:"height" validate:"omitempty,min=1,max=4000"`
}

type SectionsPatch struct {
	Home     *string `json:"home" validate:"omitempty,max=100"`
	Archive  *string `json:"archive" validate:"omitempty,max=100"`
	Admin    *string `json:"admin" validate:"omitempty,max=100"`
	Featured *string `json:"featured" validate:"omitempty,max=100"`
	New      *string `json:"new" validate:"omitempty,max=100"`
	Sale     *string `json:"sale" validate:"omitempty,max=100"`
}

// 部分更新。nilのフィールドは触らない。
type SiteSettingsPatch struct {
	SiteName        *string           `json:"siteName" validate:"omitempty,max=255"`
	SiteDescription *string           `json:"siteDescription" validate:"omitempty,max=1000"`
	MainTitle       *string           `json:"mainTitle" validate:"omitempty,max=255"`
	MainDescription *string           `json:"mainDescription" validate:"omitempty,max=1000"`
	ContactEmail    *string           `json:"contactEmail" validate:"omitempty,max=255"`
	ContactPhone    *string           `json:"contactPhone" validate:"omitempty,max=64"`
	HeaderImage     *string           `json:"headerImage" validate:"omitempty,imageurl"`
	FooterText      *string           `json:"footerText" validate:"omitempty,max=1000"`
	PrimaryColor    *string           `json:"primaryColor" validate:"omitempty,max=32"`
	SecondaryColor  *string           `json:"secondaryColor" validate:"omitempty,max=32"`
	CardSize        *CardSizePatch    `json:"cardSize"`
	ProductsPerPage *int              `json:"productsPerPage" validate:"omitempty,min=1,max=100"`
	Sections        *SectionsPatch    `json:"sections"`
	NavigationLinks *[]NavigationLink `json:"navigationLinks" validate:"omitempty,max=20,dive"`

	Extra map[string]json.RawMessage `json:"extra"`
}

var knownSettingsKeys = map[string]struct{}{
	"version": {}, "siteName": {}, "siteDescription": {}, "mainTitle": {}, "mainDescription": {},
	"contactEmail": {}, "contactPhone": {}, "headerImage": {}, "footerText": {},
	"primaryColor": {}, "secondaryColor": {}, "cardSize": {}, "productsPerPage": {},
	"sections": {}, "navigationLinks": {}, "extra": {},
}

// 知らないトップレベルのキーはExtraへ入れる。
func (p *SiteSettingsPatch) UnmarshalJSON(data []byte) error {
	type plain SiteSettingsPatch
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if _, ok := knownSettingsKeys[k]; ok {
			continue
		}
		if known.Extra == nil {
			known.Extra = make(map[string]json.RawMessage)
		}
		known.Extra[k] = v
	}

	*p = SiteSettingsPatch(known)
	return nil
}

// パッチを重ねた新しい設定を返す（cardSize/sectionsは1階層下までマージ）。
func (s SiteSettings) Apply(p SiteSettingsPatch) SiteSettings {
	out := s.Clone()

	setString(&out.SiteName, p.SiteName)
	setString(&out.SiteDescription, p.SiteDescription)
	setString(&out.MainTitle, p.MainTitle)
	setString(&out.MainDescription, p.MainDescription)
	setString(&out.ContactEmail, p.ContactEmail)
	setString(&out.ContactPhone, p.ContactPhone)
	setString(&out.HeaderImage, p.HeaderImage)
	setString(&out.FooterText, p.FooterText)
	setString(&out.PrimaryColor, p.PrimaryColor)
	setString(&out.SecondaryColor, p.SecondaryColor)

	if p.CardSize != nil {
		setInt(&out.CardSize.Width, p.CardSize.Width)
		setInt(&out.CardSize.Height, p.CardSize.Height)
	}
	setInt(&out.ProductsPerPage, p.ProductsPerPage)

	if p.Sections != nil {
		setString(&out.Sections.Home, p.Sections.Home)
		setString(&out.Sections.Archive, p.Sections.Archive)
		setString(&out.Sections.Admin, p.Sections.Admin)
		setString(&out.Sections.Featured, p.Sections.Featured)
		setString(&out.Sections.New, p.Sections.New)
		setString(&out.Sections.Sale, p.Sections.Sale)
	}

	// リンクは丸ごと置き換え
	if p.NavigationLinks != nil {
		out.NavigationLinks = append([]NavigationLink{}, (*p.NavigationLinks)...)
	}

	for k, v := range p.Extra {
		if string(v) == "null" {
			delete(out.Extra, k)
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = append(json.RawMessage(nil), v...)
	}

	out.Version = SiteSettingsVersion
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// site_settingsテーブルの1行（id=1固定）
type SiteSettingsRecord struct {
	ID        int64                            `gorm:"primaryKey"`
	Version   int                              `gorm:"not null"`
	Payload   datatypes.JSONType[SiteSettings] `gorm:"not null"`
	UpdatedAt time.Time                        `gorm:"not null"`
}

const SiteSettingsRecordID int64 = 1

func (SiteSettingsRecord) TableName() string {
	return "site_settings"
}
