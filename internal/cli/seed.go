package cli

import (
	"catalogue/internal/course"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Preload the sample courses",
	Long: `Stores the sample courses in the configured database. Unless --force is
given nothing happens when the catalogue already holds courses.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "add the samples even when courses exist")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	store, err := openStorage(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = store.close() }()

	svc := course.NewServiceImpl(store.courses)
	if seedForce {
		if err := course.Seed(cmd.Context(), svc); err != nil {
			return errors.Trace(err)
		}
		cmd.Printf("added %d sample courses\n", len(course.SampleCourses))
		return nil
	}

	seeded, err := course.SeedIfEmpty(cmd.Context(), svc)
	if err != nil {
		return errors.Trace(err)
	}
	if !seeded {
		cmd.Println("catalogue already holds courses, nothing added")
		return nil
	}
	cmd.Printf("added %d sample courses\n", len(course.SampleCourses))
	return nil
}
