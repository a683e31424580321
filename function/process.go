package function

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/arnodel/jsel/value"
)

func init() {
	Default.Register(Def{
		Name: "exec", Group: "process",
		MinArgs: 1, MaxArgs: -1,
		Doc:   "Runs cmd with args, waits for it, and returns {success, exit_code, raw_stdout, stdout, raw_stderr, stderr}.",
		Build: simple(runExec),
	})
	Default.Register(Def{
		Name: "trigger", Group: "process",
		MinArgs: 1, MaxArgs: -1,
		Doc:   "Starts cmd with args without waiting, returning its PID.",
		Build: simple(runTrigger),
	})
}

func commandArgs(args []value.Value) ([]string, bool) {
	out := make([]string, len(args))
	for i, a := range args {
		s, isStr := asString(a)
		if !isStr {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

func runExec(args []value.Value) (value.Value, bool) {
	argv, isStr := commandArgs(args)
	if !isStr {
		return nil, false
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	success := err == nil
	if exitErr, isExit := err.(*exec.ExitError); isExit {
		exitCode = exitErr.ExitCode()
	} else if err != nil && !success {
		return nil, false
	}
	result := value.NewObject()
	result.Set("success", value.Bool(success))
	result.Set("exit_code", value.Int(int64(exitCode)))
	result.Set("raw_stdout", value.String(stdout.String()))
	result.Set("stdout", value.String(strings.TrimRight(stdout.String(), "\n")))
	result.Set("raw_stderr", value.String(stderr.String()))
	result.Set("stderr", value.String(strings.TrimRight(stderr.String(), "\n")))
	return result, true
}

func runTrigger(args []value.Value) (value.Value, bool) {
	argv, isStr := commandArgs(args)
	if !isStr {
		return nil, false
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, false
	}
	return value.Int(int64(cmd.Process.Pid)), true
}
