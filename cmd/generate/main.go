package main

import (
	"encoding/csv"
	"flag"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/paystream/transaction-engine/core"
)

// Synthetic transaction stream generator. Emits the same wire format the
// process command consumes: every client opens with a deposit, then the
// remainder is split 40% deposits, 40% withdrawals, 15% disputes, 2.5%
// resolves and 2.5% chargebacks, with a trailing fill of deposits.

const (
	clientChunkSize = 50

	// amount ranges in 4-fractional-digit units, e.g. 300000 = 30.0000
	minDepositUnits  = 300_000
	maxDepositUnits  = 5_000_000
	minWithdrawUnits = 100_000
	maxWithdrawUnits = 4_000_000
)

type Config struct {
	Clients      uint
	Transactions uint
	Seed         uint64
	Verbose      bool
}

func main() {
	cfg := parseFlags()

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := generate(cfg, logger, os.Stdout); err != nil {
		logger.Error("generation failed", "error", err.Error())
		os.Exit(1)
	}
}

func parseFlags() Config {
	var cfg Config

	flag.UintVar(&cfg.Clients, "clients", math.MaxUint16, "number of clients")
	flag.UintVar(&cfg.Transactions, "transactions", 1_000_000, "number of transactions")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "seed for deterministic output (0 picks a random seed)")
	flag.BoolVar(&cfg.Verbose, "v", false, "log generation progress")
	flag.Parse()

	if cfg.Clients < 2 || cfg.Clients > math.MaxUint16 || cfg.Transactions < cfg.Clients-1 {
		flag.PrintDefaults()
		os.Exit(2)
	}

	return cfg
}

type generator struct {
	csv     *csv.Writer
	rng     *rand.Rand
	written uint
}

func generate(cfg Config, logger *slog.Logger, out *os.File) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	g := &generator{
		csv: csv.NewWriter(out),
		rng: rand.New(rand.NewPCG(seed, seed)),
	}

	logger.Info("generating transactions", "transactions", cfg.Transactions, "clients", cfg.Clients, "seed", seed)

	if err := g.csv.Write([]string{"type", "client", "tx", "amount"}); err != nil {
		return err
	}

	// Every client opens with a deposit. Shuffling within chunks keeps the
	// opening section from being strictly ordered by client id while bounding
	// how far any client's first transaction can drift.
	logger.Debug("generating initial deposits", "count", cfg.Clients-1)

	clients := make([]core.ClientID, 0, cfg.Clients-1)
	for client := uint(1); client < cfg.Clients; client++ {
		clients = append(clients, core.ClientID(client))
	}

	for start := 0; start < len(clients); start += clientChunkSize {
		chunk := clients[start:min(start+clientChunkSize, len(clients))]
		g.rng.Shuffle(len(chunk), func(i, j int) {
			chunk[i], chunk[j] = chunk[j], chunk[i]
		})

		for _, client := range chunk {
			if err := g.deposit(client); err != nil {
				return err
			}
		}
	}

	remaining := float64(cfg.Transactions - g.written)
	deposits := uint(remaining * 0.4)
	withdrawals := uint(remaining * 0.4)
	disputes := uint(remaining * 0.15)
	resolves := uint(remaining * 0.025)
	chargebacks := uint(remaining * 0.025)

	logger.Debug("generating command mix",
		"deposits", deposits, "withdrawals", withdrawals,
		"disputes", disputes, "resolves", resolves, "chargebacks", chargebacks)

	roundedTotal := deposits + withdrawals + disputes + resolves + chargebacks

	for roundedTotal > 0 {
		client := g.randomClient(cfg.Clients)

		if deposits > 0 {
			if err := g.deposit(client); err != nil {
				return err
			}
			deposits--
			roundedTotal--
		}

		if roundedTotal > 0 && withdrawals > 0 {
			if err := g.withdraw(client); err != nil {
				return err
			}
			withdrawals--
			roundedTotal--
		}

		if roundedTotal > 0 && disputes > 0 {
			// dispute the deposit written just before the withdrawal
			disputeID := core.TransactionID(g.written - 1)

			if err := g.reference(core.DisputeCommandType, client, disputeID); err != nil {
				return err
			}
			disputes--
			roundedTotal--

			if roundedTotal > 0 && resolves > 0 {
				if err := g.reference(core.ResolveCommandType, client, disputeID); err != nil {
					return err
				}
				resolves--
				roundedTotal--
			} else if roundedTotal > 0 && chargebacks > 0 {
				if err := g.reference(core.ChargebackCommandType, client, disputeID); err != nil {
					return err
				}
				chargebacks--
				roundedTotal--
			}
		}
	}

	logger.Debug("generating fill deposits", "count", cfg.Transactions-g.written)

	for g.written < cfg.Transactions {
		if err := g.deposit(g.randomClient(cfg.Clients)); err != nil {
			return err
		}
	}

	g.csv.Flush()
	if err := g.csv.Error(); err != nil {
		return err
	}

	logger.Info("generated transactions", "transactions", g.written, "clients", cfg.Clients)

	return nil
}

func (g *generator) randomClient(totalClients uint) core.ClientID {
	return core.ClientID(g.rng.UintN(totalClients-1) + 1)
}

func (g *generator) deposit(client core.ClientID) error {
	amount := decimal.New(g.rng.Int64N(maxDepositUnits-minDepositUnits)+minDepositUnits, -4)

	return g.write(core.DepositCommandType, client, amount.StringFixed(4))
}

func (g *generator) withdraw(client core.ClientID) error {
	amount := decimal.New(g.rng.Int64N(maxWithdrawUnits-minWithdrawUnits)+minWithdrawUnits, -4)

	return g.write(core.WithdrawCommandType, client, amount.StringFixed(4))
}

// write emits a fresh-transaction row; the tx id is the running count.
func (g *generator) write(commandType core.CommandType, client core.ClientID, amount string) error {
	record := []string{
		commandType,
		strconv.FormatUint(uint64(client), 10),
		strconv.FormatUint(uint64(g.written+1), 10),
		amount,
	}

	if err := g.csv.Write(record); err != nil {
		return err
	}
	g.written++

	return nil
}

// reference emits a dispute/resolve/chargeback row referring to a prior tx.
func (g *generator) reference(commandType core.CommandType, client core.ClientID, tx core.TransactionID) error {
	record := []string{
		commandType,
		strconv.FormatUint(uint64(client), 10),
		strconv.FormatUint(uint64(tx), 10),
		"",
	}

	if err := g.csv.Write(record); err != nil {
		return err
	}
	g.written++

	return nil
}
