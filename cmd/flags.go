package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/cryptsh/crypt/internal/materialize"
)

// linkValue collects repeatable "secret:path" pairs for the --link flag.
type linkValue struct {
	links *[]materialize.Link
}

var _ pflag.Value = (*linkValue)(nil)

func (v *linkValue) String() string {
	if v.links == nil {
		return ""
	}
	pairs := make([]string, 0, len(*v.links))
	for _, link := range *v.links {
		pairs = append(pairs, link.LogicalPath+":"+link.Dest)
	}
	return strings.Join(pairs, ",")
}

func (v *linkValue) Set(value string) error {
	secret, dest, ok := strings.Cut(value, ":")
	if !ok || secret == "" || dest == "" {
		return fmt.Errorf("expected <secret>:<path>, got %q", value)
	}
	*v.links = append(*v.links, materialize.Link{LogicalPath: secret, Dest: dest})
	return nil
}

func (v *linkValue) Type() string {
	return "secret:path"
}
