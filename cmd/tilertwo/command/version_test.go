package command_test

import (
	"github.com/azavea/tilertwo/cmd/tilertwo/command"
)

func (s *Suite) TestVersion() {
	cmd := &command.VersionCmd{}
	s.Require().NoError(cmd.Run(&command.VersionInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-10-16"}, s.registry))
	s.Equal("1.2.3\n", string(s.readStdout()))
}

func (s *Suite) TestVersionDetail() {
	cmd := &command.VersionCmd{Detail: true}
	s.Require().NoError(cmd.Run(&command.VersionInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-10-16"}, s.registry))
	s.Equal("1.2.3 (abc123 2026-10-16)\nimport: file, https, s3, gs, azblob\nexport: file, s3, gs, azblob\n", string(s.readStdout()))
}
