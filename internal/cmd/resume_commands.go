package cmd

import (
	"errors"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"jobboard/internal/client"
	"jobboard/internal/model"
)

// openFile prepares a local file for upload. The caller closes it.
func openFile(path string) (*client.File, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &client.File{Filename: filepath.Base(path), ContentType: ct, Body: f}, f, nil
}

type ResumeUploadCommand struct {
	Meta *Meta
}

func (c *ResumeUploadCommand) Run(args []string) int {
	f := defaultFlagSet("resume upload")
	if !c.Meta.parse(f, args, 1) {
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	if _, err := c.Meta.session(ctx, model.RoleApplicant); err != nil {
		return c.Meta.fail(err)
	}
	file, fh, err := openFile(f.Arg(0))
	if err != nil {
		return c.Meta.fail(err)
	}
	defer fh.Close()

	u, err := c.Meta.Client().UploadResume(ctx, *file)
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(color.GreenString("Resume uploaded: %s", u.Profile.ResumeFilename))
	c.Meta.Ui.Output("Key: " + u.Profile.Resume)
	return 0
}

func (c *ResumeUploadCommand) Help() string {
	return usage(c.Synopsis()+". PDF, DOC and DOCX up to 5MB are accepted", "resume upload <path>", nil)
}

func (c *ResumeUploadCommand) Synopsis() string { return "Upload the resume attached to your profile" }

type ResumeDownloadCommand struct {
	Meta *Meta

	output string
}

func (c *ResumeDownloadCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("resume download")
	fs.StringVar(&c.output, "o", "", "output file (default: the uploaded filename in the current directory)")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *ResumeDownloadCommand) Run(args []string) int {
	f := c.flags()
	if !c.Meta.parse(f, args, 1) {
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	if _, err := c.Meta.session(ctx); err != nil {
		return c.Meta.fail(err)
	}

	dir := "."
	if c.output != "" {
		dir = filepath.Dir(c.output)
	}
	tmp, err := os.CreateTemp(dir, ".resume-*")
	if err != nil {
		return c.Meta.fail(err)
	}
	defer os.Remove(tmp.Name())

	name, err := c.Meta.Client().DownloadResume(ctx, f.Arg(0), tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return c.Meta.fail(err)
	}

	dst := c.output
	if dst == "" {
		dst = filepath.Base(name)
		if dst == "." || dst == string(filepath.Separator) {
			return c.Meta.fail(errors.New("server sent no usable filename, use -o"))
		}
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(fmt.Sprintf("Saved %s", dst))
	return 0
}

func (c *ResumeDownloadCommand) Help() string {
	return usage(c.Synopsis(), "resume download [-o=<file>] <key>", c.flags())
}

func (c *ResumeDownloadCommand) Synopsis() string { return "Download a resume by its storage key" }
