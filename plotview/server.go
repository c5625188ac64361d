package plotview

import (
	"bytes"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/dramsec/hammerplot/plotview/static"
)

// Server serves the plot page and the JSON API behind it. It holds one
// current heat map at a time; the page polls for changes.
type Server struct {
	portNumber int

	mu   sync.Mutex
	seq  int
	plot *Heatmap
}

// NewServer creates a plot server. A portNumber of 0 picks a free
// port.
func NewServer(portNumber int) *Server {
	return &Server{portNumber: portNumber}
}

// SetPlot replaces the currently displayed heat map.
func (s *Server) SetPlot(hm *Heatmap) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	hm.Seq = s.seq
	s.plot = hm
}

// Start begins serving in the background and returns the URL of the
// plot page.
func (s *Server) Start() (string, error) {
	r := mux.NewRouter()

	fs := static.GetAssets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/plot", s.servePlot)
	r.HandleFunc("/api/resource", s.listResources)
	r.HandleFunc("/api/profile", s.collectProfile)
	r.PathPrefix("/").Handler(fServer)

	listener, err := net.Listen("tcp", ":"+strconv.Itoa(s.portNumber))
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Serving plots at %s\n", url)

	go func() {
		dieOnErr(http.Serve(listener, r))
	}()

	return url, nil
}

func (s *Server) servePlot(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	plot := s.plot
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if plot == nil {
		_, err := w.Write([]byte(`{"seq":0}`))
		dieOnErr(err)

		return
	}

	bytes, err := json.Marshal(plot)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (s *Server) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (s *Server) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
