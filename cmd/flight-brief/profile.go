package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"flight_brief/internal/storage"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect or save the qualification profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored qualification profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		p, err := db.GetProfile(context.Background())
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Println("No profile saved yet. Use 'flight-brief profile save' first.")
			return nil
		}

		fmt.Printf("姓名：%s\n", p.Name)
		fmt.Printf("技术等级：%s\n", p.TechLevel)
		fmt.Printf("报务资格：%s\n", p.RadioQual)
		fmt.Printf("总起落：%d  总经历：%.1f\n", p.TotalLandings, p.TotalHours)
		fmt.Printf("本机型起落：%d  本机型经历：%.1f\n", p.TypeLandings, p.TypeHours)
		fmt.Printf("曾飞机型：%s\n", p.PreviousAircraft)
		fmt.Printf("移动飞行APP告警：%s\n", p.AppAlert)
		fmt.Printf("EFB电量及更新：%s\n", p.EFBStatus)
		fmt.Printf("上次主飞起落时间及机型：%s\n", p.LastPFTime)
		fmt.Printf("最近起落状态：%s\n", p.LandingQuality)
		fmt.Printf("上车地点：%s\n", p.PickupLocation)
		fmt.Printf("更新时间：%s\n", p.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}

var profileSaveFlags storage.Profile

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the qualification profile (unset flags keep stored values)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		ctx := context.Background()

		// Start from the stored row so a partial save does not blank the
		// remaining fields.
		var p storage.Profile
		if stored, err := db.GetProfile(ctx); err != nil {
			return err
		} else if stored != nil {
			p = *stored
		}

		set := map[string]func(){
			"name":              func() { p.Name = profileSaveFlags.Name },
			"tech-level":        func() { p.TechLevel = profileSaveFlags.TechLevel },
			"radio-qual":        func() { p.RadioQual = profileSaveFlags.RadioQual },
			"total-landings":    func() { p.TotalLandings = profileSaveFlags.TotalLandings },
			"total-hours":       func() { p.TotalHours = profileSaveFlags.TotalHours },
			"type-landings":     func() { p.TypeLandings = profileSaveFlags.TypeLandings },
			"type-hours":        func() { p.TypeHours = profileSaveFlags.TypeHours },
			"previous-aircraft": func() { p.PreviousAircraft = profileSaveFlags.PreviousAircraft },
			"app-alert":         func() { p.AppAlert = profileSaveFlags.AppAlert },
			"efb-status":        func() { p.EFBStatus = profileSaveFlags.EFBStatus },
			"last-pf":           func() { p.LastPFTime = profileSaveFlags.LastPFTime },
			"landing-quality":   func() { p.LandingQuality = profileSaveFlags.LandingQuality },
			"pickup":            func() { p.PickupLocation = profileSaveFlags.PickupLocation },
		}
		for name, apply := range set {
			if cmd.Flags().Changed(name) {
				apply()
			}
		}

		if err := db.SaveProfile(ctx, p); err != nil {
			return err
		}
		fmt.Println("Profile saved.")
		return nil
	},
}

func init() {
	f := profileSaveCmd.Flags()
	f.StringVar(&profileSaveFlags.Name, "name", "", "co-pilot name")
	f.StringVar(&profileSaveFlags.TechLevel, "tech-level", "", "technical level, e.g. B类副驾驶")
	f.StringVar(&profileSaveFlags.RadioQual, "radio-qual", "", "radio qualification (有/无)")
	f.IntVar(&profileSaveFlags.TotalLandings, "total-landings", 0, "total landings")
	f.Float64Var(&profileSaveFlags.TotalHours, "total-hours", 0, "total flight hours")
	f.IntVar(&profileSaveFlags.TypeLandings, "type-landings", 0, "landings on current type")
	f.Float64Var(&profileSaveFlags.TypeHours, "type-hours", 0, "hours on current type")
	f.StringVar(&profileSaveFlags.PreviousAircraft, "previous-aircraft", "", "previously flown types")
	f.StringVar(&profileSaveFlags.AppAlert, "app-alert", "", "mobile flight app alert (有/无)")
	f.StringVar(&profileSaveFlags.EFBStatus, "efb-status", "", "EFB charge and update status")
	f.StringVar(&profileSaveFlags.LastPFTime, "last-pf", "", "last primary-flying landing, e.g. 2026-08-29 / A320")
	f.StringVar(&profileSaveFlags.LandingQuality, "landing-quality", "", "recent landing quality notes")
	f.StringVar(&profileSaveFlags.PickupLocation, "pickup", "", "pickup location")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSaveCmd)
}
