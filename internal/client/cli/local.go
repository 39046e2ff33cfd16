package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/credkit/internal/cryptox"
	"github.com/dmitrijs2005/credkit/internal/randx"
)

func (a *App) salt() error {
	s, err := cryptox.GenerateSalt(a.src)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, s)
	return nil
}

func (a *App) hash(args []string) error {
	input := strings.Join(args, " ")
	if len(args) == 0 {
		var err error
		input, err = getSimpleText(a.reader, "Enter input", a.out)
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(a.out, cryptox.Hash(input))
	return nil
}

func (a *App) derive(args []string) error {
	fs := flag.NewFlagSet("derive", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	salt := fs.String("salt", "", "salt to use, generated when empty")
	kdf := fs.String("kdf", cryptox.KDFIterated, "key derivation function")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := cryptox.LookupDeriver(*kdf)
	if err != nil {
		return err
	}

	if *salt == "" {
		if *salt, err = cryptox.GenerateSalt(a.src); err != nil {
			return err
		}
	}

	pw, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer randx.Wipe(pw)

	fmt.Fprintf(a.out, "kdf: %s\nsalt: %s\ncredential: %s\n", d.Name(), *salt, d.Derive(string(pw), *salt))
	return nil
}
