// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/meta"
)

const bashCompletionScript = `# bash completion for dmpsetup
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_dmpsetup()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "build check diff packages publish requirements show completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local project="--manifest -m --readme -r --include --exclude -x"
    local out="--output -o --color -c --titles -t"
    local dist="--format --dist-dir -d"

    case "$cmd" in
        build)
            local opts="$project $out $dist"
            ;;
        check)
            local opts="$project --strict"
            ;;
        diff)
            local opts="$project --ignore -i --color -c --exit-code"
            ;;
        packages)
            local opts="$project $out --modules"
            ;;
        publish)
            local opts="$project $out $dist --bucket --prefix --region --profile --endpoint"
            ;;
        requirements)
            local opts="$project $out --as-written -w"
            ;;
        show)
            local opts="$project $out --field -f"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml raw" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "sdist wheel" -- "$cur") )
            return 0
            ;;
        --manifest|-m|--readme|-r)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -o dirnames -- "$cur") )
    return 0
}

complete -F _dmpsetup dmpsetup
`

const zshCompletionScript = `#compdef dmpsetup

_dmpsetup() {
  local -a cmds
  cmds=(
    'build:build the sdist and wheel'
    'check:validate the package metadata record'
    'diff:compare the record with a saved snapshot'
    'packages:list the importable packages'
    'publish:build the artifacts and upload them to S3'
    'requirements:list the install requirements'
    'show:print the package metadata record'
    'completion:generate shell completion script'
  )

  local -a project out dist
  project=(
    '(-m --manifest)'{-m,--manifest}'[requirements manifest]:file:_files'
    '(-r --readme)'{-r,--readme}'[long description file]:file:_files'
    '*--include[package glob to include]:glob'
    '*'{-x,--exclude}'[package glob to exclude]:glob'
  )
  out=(
    '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw)'
    '(-c --color)'{-c,--color}'[enable colored text]'
    '(-t --titles)'{-t,--titles}'[show titles]'
  )
  dist=(
    '*--format[distribution format]:format:(sdist wheel)'
    '(-d --dist-dir)'{-d,--dist-dir}'[artifact directory]:dir:_directories'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'dmpsetup commands' cmds
    return
  fi

  case $words[2] in
    build)
      _arguments -C $project $out $dist '::RootDir:_directories'
      ;;
    check)
      _arguments -C $project '--strict[fail on lint warnings]' '::RootDir:_directories'
      ;;
    diff)
      _arguments -C $project \
        '*'{-i,--ignore}'[key left out of the comparison]:key' \
        '(-c --color)'{-c,--color}'[color the delta]' \
        '--exit-code[fail when the records differ]' \
        '::RootDir:_directories' \
        ':snapshot:_files'
      ;;
    packages)
      _arguments -C $project $out '--modules[list module files]' '::RootDir:_directories'
      ;;
    publish)
      _arguments -C $project $out $dist \
        '--bucket[S3 bucket]:bucket' \
        '--prefix[key prefix]:prefix' \
        '--region[AWS region]:region' \
        '--profile[AWS profile]:profile' \
        '--endpoint[S3-compatible endpoint]:url' \
        '::RootDir:_directories'
      ;;
    requirements)
      _arguments -C $project $out '(-w --as-written)'{-w,--as-written}'[as written]' '::RootDir:_directories'
      ;;
    show)
      _arguments -C $project $out '(-f --field)'{-f,--field}'[gjson path]:path' '::RootDir:_directories'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _dmpsetup dmpsetup
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(stdout(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout(cmd), zshCompletionScript)
	default:
		return fmt.Errorf("usage: dmpsetup completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "dmpsetup completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
