package main

import (
	"cardbot/internal/repository/postgres"
	"cardbot/internal/seed"
	"cardbot/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedCommand(getLogger func() *zap.Logger) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import global words from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := getLogger()

			pairs, err := seed.ReadFile(file)
			if err != nil {
				return err
			}

			_, db, err := openDatabase(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer db.Close()

			words := service.NewWordService(postgres.NewWordRepo(db), logger)
			inserted, err := words.ImportGlobalWords(cmd.Context(), pairs)
			if err != nil {
				return err
			}

			logger.Info("Global words imported",
				zap.String("file", file),
				zap.Int("read", len(pairs)),
				zap.Int("inserted", inserted),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "data/global_words.yaml", "YAML file with english/russian pairs")

	return cmd
}
