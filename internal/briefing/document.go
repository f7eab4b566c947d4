package briefing

import (
	"strings"
	"text/template"
	"time"

	"flight_brief/internal/storage"
)

// Form carries the per-flight input merged with the stored profile when a
// briefing document is rendered. Time fields follow the HHMM convention
// and are not validated.
type Form struct {
	FlightNumber string `json:"flight_number" yaml:"flight_number"`
	Route        string `json:"route" yaml:"route"`
	// RouteRisks is typically the output of RisksForRoute, but remains
	// free text so the user can edit the loaded blocks before rendering.
	RouteRisks string `json:"route_risks" yaml:"route_risks"`
	DepTime    string `json:"dep_time" yaml:"dep_time"`
	SignInTime string `json:"sign_in_time" yaml:"sign_in_time"`
	Captain    string `json:"captain" yaml:"captain"`
	CoPilots   string `json:"co_pilots" yaml:"co_pilots"`
	OtherCrew  string `json:"other_crew" yaml:"other_crew"`

	DGExpiry         string `json:"dg_expiry" yaml:"dg_expiry"`
	SeasonalTraining string `json:"seasonal_training" yaml:"seasonal_training"`
	DocsValid        string `json:"docs_valid" yaml:"docs_valid"`
	OnlinePrep       string `json:"online_prep" yaml:"online_prep"`
	StudiedRoute     string `json:"studied_route" yaml:"studied_route"`
	RNPQual          string `json:"rnp_qual" yaml:"rnp_qual"`

	// LastPFDate and AircraftType compose the "last primary-flying
	// landing" field, e.g. "2026-08-29 / A320".
	LastPFDate   string `json:"last_pf_date" yaml:"last_pf_date"`
	AircraftType string `json:"aircraft_type" yaml:"aircraft_type"`

	SpecialAirports    string `json:"special_airports" yaml:"special_airports"`
	SpecialAirportNote string `json:"special_airport_note" yaml:"special_airport_note"`
	SpecialApproach    string `json:"special_approach" yaml:"special_approach"`
	MELsPrepared       string `json:"mels_prepared" yaml:"mels_prepared"`
	LongFlight         string `json:"long_flight" yaml:"long_flight"`
	OtherRisks         string `json:"other_risks" yaml:"other_risks"`
	PickupLocation     string `json:"pickup_location" yaml:"pickup_location"`
}

// LastPF returns the composite last primary-flying field for this form,
// falling back to the profile's stored value when the form carries no
// date.
func (f Form) LastPF(p storage.Profile) string {
	if strings.TrimSpace(f.LastPFDate) == "" {
		return p.LastPFTime
	}
	if strings.TrimSpace(f.AircraftType) == "" {
		return strings.TrimSpace(f.LastPFDate)
	}
	return strings.TrimSpace(f.LastPFDate) + " / " + strings.TrimSpace(f.AircraftType)
}

const documentTemplate = `副驾驶部分:
第一部分 个人资质
姓名：{{.Name}}
目前技术等级：{{.TechLevel}}
报务资格：{{.RadioQual}}
总起落：{{.TotalLandings}}        总经历：{{.TotalHours}}
本机型起落：{{.TypeLandings}}      本机型经历：{{.TypeHours}}
曾飞机型：{{.PreviousAircraft}}
危险品有效期：{{.DGExpiry}}
上次参加换季学习时间：{{.SeasonalTraining}}
移动飞行 APP 有无资质告警：{{.AppAlert}}
执照、体检合格证、登机牌、护照等证件是否齐全有效：{{.DocsValid}}
网上准备完成情况：{{.OnlinePrep}}（是/否/连飞）
EFB 电量及资料更新情况：{{.EFBStatus}}
是否学习该航线的航线手册及相关机场细则：{{.StudiedRoute}}
有无低能见/RNP APCH 资格：{{.RNPQual}}
上次主飞起落时间及机型：{{.LastPF}}
最近起落状态（起落状况/质量/不足之处）：{{.LandingQuality}}

第二部分 航班概况
1.航班情况
-航班号：{{.FlightNumber}}
-航线：{{.Route}}
-起飞时间：{{.DepTime}}
-签到时间：{{.SignInTime}}
-机长：{{.Captain}}
-副驾驶：{{.CoPilots}}
-其他机组（如有）：{{.OtherCrew}}
2.天气状况（起飞、航路、目的、备降场）：
3.特殊天气，如低能见（云底高低于150米，能见度低于1000米）、雷雨天气、大风天气（地面风速超过30节，侧风超过15节）、严重积冰、严重颠簸：
4.航行通告（起飞、航路、目的地重要通告）：
5.航线特点及风险：{{.RouteRisks}}
6.是否涉及特殊机场：{{.SpecialAirports}}
7.预计是否使用特殊飞行方法（盘旋进近，LDA进近，VOR/GPS/LOC/ADF等）：{{.SpecialApproach}}
8.是否已对飞机故障保留项目进行准备（重点关注涉及 O 项或有飞行运行限制的故障）：{{.MELsPrepared}}
9. 是否涉及飞行时间长、航段多、跨时区超过 6 小时：{{.LongFlight}}
10. 其他风险提示/注意事项：（如稳定进近标准、鸟击、风切变、近地警告处置、超速及抖杆预防和改出、地面滑行风险、单发滑行、雷雨绕飞）：{{.OtherRisks}}
11.上车地点：{{.PickupLocation}}
`

var documentTmpl = template.Must(template.New("briefing").Parse(documentTemplate))

type documentData struct {
	Name             string
	TechLevel        string
	RadioQual        string
	TotalLandings    int
	TotalHours       int
	TypeLandings     int
	TypeHours        int
	PreviousAircraft string
	DGExpiry         string
	SeasonalTraining string
	AppAlert         string
	DocsValid        string
	OnlinePrep       string
	EFBStatus        string
	StudiedRoute     string
	RNPQual          string
	LastPF           string
	LandingQuality   string

	FlightNumber    string
	Route           string
	DepTime         string
	SignInTime      string
	Captain         string
	CoPilots        string
	OtherCrew       string
	RouteRisks      string
	SpecialAirports string
	SpecialApproach string
	MELsPrepared    string
	LongFlight      string
	OtherRisks      string
	PickupLocation  string
}

// RenderDocument merges the profile and form into the fixed-layout
// briefing text. Hour totals are truncated to whole hours, the aggregated
// risk text loses its 【】 markers, and the special-airports answer gets
// the named airports appended when given.
func RenderDocument(p storage.Profile, f Form) (string, error) {
	specialAirports := f.SpecialAirports
	if note := strings.TrimSpace(f.SpecialAirportNote); f.SpecialAirports == "是" && note != "" {
		specialAirports = "是（" + note + "）"
	}

	risks := strings.ReplaceAll(f.RouteRisks, "【", "")
	risks = strings.TrimSpace(strings.ReplaceAll(risks, "】", ""))

	data := documentData{
		Name:             p.Name,
		TechLevel:        p.TechLevel,
		RadioQual:        p.RadioQual,
		TotalLandings:    p.TotalLandings,
		TotalHours:       int(p.TotalHours),
		TypeLandings:     p.TypeLandings,
		TypeHours:        int(p.TypeHours),
		PreviousAircraft: p.PreviousAircraft,
		DGExpiry:         f.DGExpiry,
		SeasonalTraining: f.SeasonalTraining,
		AppAlert:         p.AppAlert,
		DocsValid:        f.DocsValid,
		OnlinePrep:       f.OnlinePrep,
		EFBStatus:        p.EFBStatus,
		StudiedRoute:     f.StudiedRoute,
		RNPQual:          f.RNPQual,
		LastPF:           f.LastPF(p),
		LandingQuality:   p.LandingQuality,

		FlightNumber:    f.FlightNumber,
		Route:           f.Route,
		DepTime:         f.DepTime,
		SignInTime:      f.SignInTime,
		Captain:         f.Captain,
		CoPilots:        f.CoPilots,
		OtherCrew:       f.OtherCrew,
		RouteRisks:      risks,
		SpecialAirports: specialAirports,
		SpecialApproach: f.SpecialApproach,
		MELsPrepared:    f.MELsPrepared,
		LongFlight:      f.LongFlight,
		OtherRisks:      f.OtherRisks,
		PickupLocation:  f.PickupLocation,
	}

	var b strings.Builder
	if err := documentTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// DocumentFilename suggests a download name for a rendered briefing,
// e.g. "飞行准备_吴帮帮_20260829_1350.txt".
func DocumentFilename(name string, now time.Time) string {
	if strings.TrimSpace(name) == "" {
		name = "未命名"
	}
	return "飞行准备_" + name + "_" + now.Format("20060102_1504") + ".txt"
}
