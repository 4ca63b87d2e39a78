package configuration

// ExampleConfig is written by `fan2ipmi config init`.
// It describes a dual GPU workstation with an AMD CPU and two NVMe drives behind a Supermicro BMC.
const ExampleConfig = `# fan2ipmi configuration
# Time to wait between two control cycles
interval: 5s

# Logical sensor name -> location in the output of 'sensors -j'
sensors:
  - id: cpu
    chip: k10temp-pci-00c3
    group: Tctl
    field: temp1_input
  - id: gpu0
    chip: amdgpu-pci-0300
    group: junction
    field: temp2_input
  - id: gpu1
    chip: amdgpu-pci-8300
    group: junction
    field: temp2_input
  - id: nvme1
    chip: nvme-pci-4200
    group: Composite
    field: temp1_input
  - id: nvme2
    chip: nvme-pci-4100
    group: Composite
    field: temp1_input

# Fan id -> sensors it reacts to, the hottest one wins
fans:
  - id: 1
    sensors: [ gpu0 ]
  - id: 2
    sensors: [ gpu0, gpu1 ]
  - id: 3
    sensors: [ gpu1 ]
  - id: 4
    sensors: [ gpu1, cpu ]
  - id: 5
    sensors: [ cpu ]
  - id: 6
    sensors: [ cpu ]

# Temperature (°C) -> fan speed (%), linearly interpolated in between
curve:
  40: 5
  50: 8
  60: 15
  70: 40
  80: 50
  90: 60
  95: 100

reader:
  # one of: cmd | libsensors
  type: cmd
  exec: sensors
  args: [ "-j" ]
  timeout: 5s

actuator:
  exec: ipmitool
  args: [ "raw", "0x3c", "0x30", "0x00", "%fan%", "%speed%" ]
  # one of: hex | decimal
  argFormat: hex
  timeout: 2s

statistics:
  enabled: false
  port: 9000

api:
  enabled: false
  host: localhost
  port: 9001

profiling:
  enabled: false
  host: localhost
  port: 6060
`
