package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/born-ml/ttcore/tensor"
	"github.com/born-ml/ttcore/tt"
)

func (a *app) newRandomCmd() *cobra.Command {
	var (
		shape     []int
		ranksTT   []int
		ranksTuck []int
		seed      int64
	)
	cmd := &cobra.Command{
		Use:   "random [flags] OUT",
		Short: "Write a random tensor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tt.Random(tensor.Shape(shape), tt.RandomConfig{
				RanksTT:     ranksTT,
				RanksTucker: ranksTuck,
				Seed:        seed,
			})
			if err != nil {
				return err
			}
			a.log.Info("generated tensor", "shape", shape, "ranks_tt", t.RanksTT(), "seed", seed)
			if err := tt.Save(args[0], t, derive(map[string]string{"seed": strconv.FormatInt(seed, 10)})); err != nil {
				return err
			}
			printSummary(cmd, t, nil)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&shape, "shape", []int{4, 4, 4}, "size of each dimension")
	cmd.Flags().IntSliceVar(&ranksTT, "rank-tt", []int{3}, "bond ranks (one value applies to all bonds)")
	cmd.Flags().IntSliceVar(&ranksTuck, "rank-tucker", nil, "Tucker ranks (0 leaves a dimension without factor)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Describe a saved tensor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, meta, err := tt.Load(args[0])
			if err != nil {
				return err
			}
			printSummary(cmd, t, meta)
			return nil
		},
	}
}

func (a *app) newRoundCmd() *cobra.Command {
	var (
		eps        float64
		rank       int
		algorithm  string
		tuckerEps  float64
		tuckerRank int
	)
	cmd := &cobra.Command{
		Use:   "round [flags] IN OUT",
		Short: "Compress a saved tensor",
		Long: "Round the Tucker factors (when --tucker-eps or --tucker-rank is set) and then the\n" +
			"TT bonds, and report the relative error against the input.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := tt.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}
			src, meta, err := tt.Load(args[0])
			if err != nil {
				return err
			}
			t := src.Clone()

			if tuckerEps > 0 || tuckerRank > 0 {
				ranks, err := t.RoundTucker(tt.TuckerConfig{
					Eps:       tuckerEps,
					Rank:      tuckerRank,
					Algorithm: alg,
					Logger:    a.log,
				})
				if err != nil {
					return err
				}
				a.log.Info("tucker rounding done", "ranks", ranks)
			}
			ranks, err := t.RoundTT(tt.RoundConfig{
				Eps:       eps,
				Rank:      rank,
				Algorithm: alg,
				Logger:    a.log,
			})
			if err != nil {
				return err
			}
			a.log.Info("tt rounding done", "ranks", ranks)

			relErr, err := tt.RelativeError(src, t)
			if err != nil {
				return err
			}
			if err := tt.Save(args[1], t, derive(meta)); err != nil {
				return err
			}
			printSummary(cmd, t, nil)
			fmt.Fprintf(cmd.OutOrStdout(), "  rel. error:   %.3e (%d -> %d parameters)\n", relErr, src.Size(), t.Size())
			return nil
		},
	}
	def := tt.DefaultRoundConfig()
	cmd.Flags().Float64Var(&eps, "eps", def.Eps, "relative error target for the TT bonds")
	cmd.Flags().IntVar(&rank, "rank", 0, "cap on every bond rank (0: no cap)")
	cmd.Flags().StringVar(&algorithm, "algorithm", def.Algorithm.String(), "truncation backend: svd or eig")
	cmd.Flags().Float64Var(&tuckerEps, "tucker-eps", 0, "relative error target for the Tucker factors")
	cmd.Flags().IntVar(&tuckerRank, "tucker-rank", 0, "cap on every Tucker rank (0: no cap)")
	return cmd
}

func (a *app) newOrthogonalizeCmd() *cobra.Command {
	var pivot int
	cmd := &cobra.Command{
		Use:   "orthogonalize [flags] IN OUT",
		Short: "Canonicalize a saved tensor around a core",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, meta, err := tt.Load(args[0])
			if err != nil {
				return err
			}
			if err := t.Orthogonalize(pivot); err != nil {
				return err
			}
			a.log.Debug("orthogonalized", "pivot", pivot, "ranks_tt", t.RanksTT())
			if err := tt.Save(args[1], t, derive(meta)); err != nil {
				return err
			}
			printSummary(cmd, t, nil)
			return nil
		},
	}
	cmd.Flags().IntVar(&pivot, "pivot", 0, "index of the core that keeps the norm")
	return cmd
}
