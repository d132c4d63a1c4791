// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/dist"
	"github.com/sidiropulos/dmpsetup/internal/output"
)

// envVar returns the DMPSETUP_ variable backing a flag name.
func envVar(name string) string {
	return "DMPSETUP_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// NewStringFlag builds a string flag whose value comes from the command line,
// then DMPSETUP_<NAME>, then the config file under <ns>.<name> and <name>.
func NewStringFlag(ns, cfgPath string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources = cli.NewValueSourceChain(cli.EnvVar(envVar(flag.Name)))
	if cfgPath != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, flag)
	}
	return flag
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if ns != "" {
		src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}

	src := yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// NewProjectFlags returns the flags that locate the project inputs.
func NewProjectFlags(ns, cfgPath string) []cli.Flag {
	return []cli.Flag{
		NewStringFlag(ns, cfgPath, &cli.StringFlag{
			Name:    "manifest",
			Aliases: []string{"m"},
			Usage:   "requirements manifest, relative to the project root",
			Value:   "requirements.txt",
		}),
		NewStringFlag(ns, cfgPath, &cli.StringFlag{
			Name:    "readme",
			Aliases: []string{"r"},
			Usage:   "long description file, relative to the project root",
			Value:   "README.md",
		}),
		&cli.StringSliceFlag{
			Name:    "include",
			Usage:   "glob over dotted package names to include",
			Sources: cli.EnvVars(envVar("include")),
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Aliases: []string{"x"},
			Usage:   "glob over dotted package names to exclude",
			Sources: cli.EnvVars(envVar("exclude")),
		},
	}
}

// NewOutputFlags returns the rendering flags. Commands that print a single
// record also get --field.
func NewOutputFlags(ns, cfgPath string, withField bool) []cli.Flag {
	flags := []cli.Flag{
		NewStringFlag(ns, cfgPath, &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (" + strings.Join(output.Formats, "|") + ")",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		}),
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.EnvVars(envVar("color")),
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
		},
	}
	if withField {
		flags = append(flags, &cli.StringFlag{
			Name:    "field",
			Aliases: []string{"f"},
			Usage:   "print only this gjson path of the record",
		})
	}
	return flags
}

// NewDistFlags returns the flags that control artifact building.
func NewDistFlags(ns, cfgPath string) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "format",
			Usage:   "distribution formats to build (" + strings.Join(dist.Formats, ",") + ")",
			Value:   []string{"sdist", "wheel"},
			Sources: cli.EnvVars(envVar("format")),
			Validator: func(values []string) error {
				for _, v := range values {
					if err := FlagValidators(v, FormatValidator); err != nil {
						return err
					}
				}
				return nil
			},
		},
		NewStringFlag(ns, cfgPath, &cli.StringFlag{
			Name:    "dist-dir",
			Aliases: []string{"d"},
			Usage:   "directory artifacts are written to, relative to the project root",
			Value:   "dist",
		}),
	}
}

// NewS3Flags returns the upload target flags.
func NewS3Flags(ns, cfgPath string) []cli.Flag {
	return []cli.Flag{
		NewStringFlag(ns, cfgPath, &cli.StringFlag{
			Name:  "bucket",
			Usage: "S3 bucket to upload to",
		}),
		NewStringFlag(ns, cfgPath, &cli.StringFlag{
			Name:  "prefix",
			Usage: "key prefix inside the bucket",
		}),
		NewStringFlag(ns, cfgPath, &cli.StringFlag{
			Name:  "region",
			Usage: "AWS region. Defaults to the AWS config chain",
		}),
		NewStringFlag(ns, cfgPath, &cli.StringFlag{
			Name:  "profile",
			Usage: "AWS shared config profile",
		}),
		NewStringFlag(ns, cfgPath, &cli.StringFlag{
			Name:  "endpoint",
			Usage: "endpoint of an S3-compatible store",
		}),
	}
}
