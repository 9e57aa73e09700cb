package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tuomas56/edidblock/pkg/edid"
)

var (
	rootCmd = &cobra.Command{
		Use:   "edidblock-decode [hex]",
		Short: "Decode EDID base blocks",
		Long:  "edidblock-decode parses 128-byte EDID base blocks using the edidblock library.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath != "" {
				return runDecodeFile(filePath)
			}
			if len(args) == 0 {
				return runInteractive()
			}
			return runDecodeHex(args[0])
		},
	}

	filePath string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&filePath, "file", "", "path to a raw binary EDID blob")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive() error {
	scanner := bufio.NewScanner(os.Stdin)
	logrus.Info("edidblock decode mode. Paste a hex block and press Enter (Ctrl+D to exit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runDecodeHex(line); err != nil {
			logrus.WithError(err).Error("failed to decode block")
		}
	}
	return scanner.Err()
}

func runDecodeHex(hex string) error {
	record, err := edid.DecodeHex(hex)
	if err != nil {
		return err
	}
	fmt.Println(record.String())
	return nil
}

func runDecodeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	record, err := edid.Decode(f)
	if err != nil {
		return err
	}
	fmt.Println(record.String())
	return nil
}
