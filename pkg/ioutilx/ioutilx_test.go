package ioutilx_test

import (
	"os"
	"path/filepath"

	. "github.com/orgacl/aclview/pkg/ioutilx"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ioutilx", func() {
	var (
		dirName string
	)

	BeforeEach(func() {
		var err error
		dirName, err = os.MkdirTemp("", "aclview-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dirName)).To(Succeed())
	})

	Describe("FileOrString", func() {
		It("returns the file contents when given a path", func() {
			path := filepath.Join(dirName, "snapshot.json")
			Expect(os.WriteFile(path, []byte(`{"apps":[]}`), 0600)).To(Succeed())

			b, err := FileOrString(path).Bytes(OS, IOReader)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(Equal(`{"apps":[]}`))
			Expect(FileOrString(path).Extension(OS)).To(Equal(".json"))
		})

		It("returns the value with decoded newlines when it is not a file", func() {
			b, err := FileOrString(`apps: []\npermissions: []`).Bytes(OS, IOReader)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(Equal("apps: []\npermissions: []"))
			Expect(FileOrString("apps: []").Extension(OS)).To(BeEmpty())
		})

		It("fails for directories", func() {
			_, err := FileOrString(dirName).Bytes(OS, IOReader)
			Expect(err).To(MatchError(ContainSubstring("is a directory")))
		})
	})

	Describe("#OpenLogFile", func() {
		It("creates the file with restricted permissions and appends to it", func() {
			path := filepath.Join(dirName, "aclview.log")
			Expect(os.WriteFile(path, []byte("line1\n"), 0600)).To(Succeed())

			file, err := OpenLogFile(path)
			Expect(err).NotTo(HaveOccurred())
			_, err = file.Write([]byte("line2\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(file.Close()).To(Succeed())

			info, err := os.Stat(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode()).To(Equal(os.FileMode(0600)))

			contents, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(contents)).To(Equal("line1\nline2\n"))
		})

		It("fails when the directory does not exist", func() {
			_, err := OpenLogFile(filepath.Join(dirName, "missing", "aclview.log"))
			Expect(err).To(HaveOccurred())
		})
	})
})
