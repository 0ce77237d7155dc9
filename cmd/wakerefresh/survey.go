package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jgoulah/wakerefresh/internal/entry"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

var (
	surveyCampus   string
	surveyWearable string
	surveyCauses   []string
	surveyConsent  bool
)

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "View or answer the pilot survey",
}

var surveyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your saved pilot survey answers",
	Args:  cobra.NoArgs,
	RunE:  runSurveyShow,
}

var surveySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save pilot survey answers",
	Long: fmt.Sprintf(`Overwrites your pilot survey answers. Flags not given keep their saved value.

Campus locations: %s
Wearables: %s
Causes: %s`,
		strings.Join(models.CampusLocations, ", "),
		strings.Join(models.Wearables, ", "),
		strings.Join(models.Causes, ", ")),
	Args: cobra.NoArgs,
	RunE: runSurveySet,
}

func init() {
	f := surveySetCmd.Flags()
	f.StringVar(&surveyCampus, "campus", "", "Where you usually start your day")
	f.StringVar(&surveyWearable, "wearable", "", "Wearable you would connect")
	f.StringSliceVar(&surveyCauses, "cause", nil, "What keeps you up late (repeatable)")
	f.BoolVar(&surveyConsent, "consent", false, "Consent to share anonymized results")

	surveyCmd.AddCommand(surveyShowCmd, surveySetCmd)
	rootCmd.AddCommand(surveyCmd)
}

func printPreferences(p models.PilotPreferences) {
	causes := "none"
	if len(p.Causes) > 0 {
		causes = strings.Join(p.Causes, ", ")
	}
	consent := "no"
	if p.ConsentShare {
		consent = "yes"
	}
	fmt.Printf("Campus location: %s\n", p.CampusLocation)
	fmt.Printf("Late-night causes: %s\n", causes)
	fmt.Printf("Wearable: %s\n", p.Wearable)
	fmt.Printf("Share results: %s\n", consent)
}

func runSurveyShow(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	prefs, err := s.gateway.LoadPreferences(context.Background())
	if err != nil {
		return err
	}
	printPreferences(prefs)
	return nil
}

func runSurveySet(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	prefs, err := s.gateway.LoadPreferences(ctx)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("campus") {
		prefs.CampusLocation = surveyCampus
	}
	if flags.Changed("wearable") {
		prefs.Wearable = surveyWearable
	}
	if flags.Changed("cause") {
		prefs.Causes = surveyCauses
	}
	if flags.Changed("consent") {
		prefs.ConsentShare = surveyConsent
	}

	prefs, err = entry.NormalizePreferences(prefs)
	if err != nil {
		return err
	}
	if err := s.gateway.SavePreferences(ctx, prefs); err != nil {
		return err
	}

	fmt.Println("✓ Survey saved")
	printPreferences(prefs)
	return nil
}
