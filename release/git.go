package release

import (
	"fmt"

	"github.com/bitrise-io/steps-cordova/cmdrunner"
)

// PushOptions ...
type PushOptions struct {
	Remote string
	// LocalBranch defaults to the current branch.
	LocalBranch string
	// RemoteBranch defaults to LocalBranch.
	RemoteBranch string
	Force        bool
	Tags         bool
}

func (o PushOptions) remote() string {
	if o.Remote == "" {
		return "origin"
	}
	return o.Remote
}

// Git ...
type Git struct {
	runner cmdrunner.Runner
}

// NewGit ...
func NewGit(runner cmdrunner.Runner) Git {
	return Git{runner: runner}
}

// CommitAndTag commits the given paths and tags the new commit.
func (g Git) CommitAndTag(message, tag string, paths ...string) error {
	if err := g.runner.Execute("git", append([]string{"add", "--"}, paths...)...); err != nil {
		return err
	}
	if err := g.runner.Execute("git", "commit", "-m", message); err != nil {
		return err
	}
	return g.runner.Execute("git", "tag", tag)
}

// CurrentBranch ...
func (g Git) CurrentBranch() (string, error) {
	branch, err := g.runner.ExecuteForOutput("git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if branch == "" || branch == "HEAD" {
		return "", fmt.Errorf("not on a branch, set the local branch to push")
	}
	return branch, nil
}

// Push ...
func (g Git) Push(opts PushOptions) error {
	local := opts.LocalBranch
	if local == "" {
		branch, err := g.CurrentBranch()
		if err != nil {
			return err
		}
		local = branch
	}

	remoteBranch := opts.RemoteBranch
	if remoteBranch == "" {
		remoteBranch = local
	}

	args := []string{"push", opts.remote(), local + ":" + remoteBranch}
	if opts.Tags {
		args = append(args, "--tags")
	}
	if opts.Force {
		args = append(args, "--force")
	}
	return g.runner.Execute("git", args...)
}
