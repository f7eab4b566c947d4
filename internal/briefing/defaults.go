package briefing

import "flight_brief/internal/storage"

// Built-in defaults belong to the entry surfaces (CLI, API callers), not
// to the store: a stored value always wins, a blank field falls back to
// these constants.

// DefaultProfile returns the built-in qualification defaults used before
// a profile has been saved.
func DefaultProfile() storage.Profile {
	return storage.Profile{
		Name:             "吴帮帮",
		TechLevel:        "B类副驾驶",
		RadioQual:        "无",
		TotalLandings:    500,
		TotalHours:       3445.0,
		TypeLandings:     450,
		TypeHours:        3200.0,
		PreviousAircraft: "无",
		AppAlert:         "无",
		EFBStatus:        "电量充足，已更新",
		LandingQuality:   "正常",
		PickupLocation:   "自行前往公司",
	}
}

// ApplyProfileDefaults fills blank profile fields from the built-in
// defaults. Numeric fields fall back only when zero.
func ApplyProfileDefaults(p *storage.Profile) {
	d := DefaultProfile()
	if p.Name == "" {
		p.Name = d.Name
	}
	if p.TechLevel == "" {
		p.TechLevel = d.TechLevel
	}
	if p.RadioQual == "" {
		p.RadioQual = d.RadioQual
	}
	if p.TotalLandings == 0 {
		p.TotalLandings = d.TotalLandings
	}
	if p.TotalHours == 0 {
		p.TotalHours = d.TotalHours
	}
	if p.TypeLandings == 0 {
		p.TypeLandings = d.TypeLandings
	}
	if p.TypeHours == 0 {
		p.TypeHours = d.TypeHours
	}
	if p.PreviousAircraft == "" {
		p.PreviousAircraft = d.PreviousAircraft
	}
	if p.AppAlert == "" {
		p.AppAlert = d.AppAlert
	}
	if p.EFBStatus == "" {
		p.EFBStatus = d.EFBStatus
	}
	if p.LandingQuality == "" {
		p.LandingQuality = d.LandingQuality
	}
	if p.PickupLocation == "" {
		p.PickupLocation = d.PickupLocation
	}
}

// ApplyFormDefaults fills blank form fields with the answers the original
// entry form preselects.
func ApplyFormDefaults(f *Form) {
	if f.DocsValid == "" {
		f.DocsValid = "齐全有效"
	}
	if f.OnlinePrep == "" {
		f.OnlinePrep = "是"
	}
	if f.StudiedRoute == "" {
		f.StudiedRoute = "已学习"
	}
	if f.RNPQual == "" {
		f.RNPQual = "有"
	}
	if f.AircraftType == "" {
		f.AircraftType = "A320"
	}
	if f.SpecialAirports == "" {
		f.SpecialAirports = "否"
	}
	if f.SpecialApproach == "" {
		f.SpecialApproach = "否"
	}
	if f.MELsPrepared == "" {
		f.MELsPrepared = "当天查看"
	}
	if f.LongFlight == "" {
		f.LongFlight = "否"
	}
	if f.OtherCrew == "" {
		f.OtherCrew = "无"
	}
}
