// Copyright (C) 2019 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vk

import "reflect"

// StructureType tags the leading field of every extensible structure.
type StructureType uint32

const (
	StructureTypeApplicationInfo                  StructureType = 0
	StructureTypeInstanceCreateInfo               StructureType = 1
	StructureTypeDeviceQueueCreateInfo            StructureType = 2
	StructureTypeDeviceCreateInfo                 StructureType = 3
	StructureTypeSubmitInfo                       StructureType = 4
	StructureTypeMemoryAllocateInfo               StructureType = 5
	StructureTypeMappedMemoryRange                StructureType = 6
	StructureTypePipelineShaderStageCreateInfo    StructureType = 18
	StructureTypeVertexInputStateCreateInfo       StructureType = 19
	StructureTypeInputAssemblyStateCreateInfo     StructureType = 20
	StructureTypeTessellationStateCreateInfo      StructureType = 21
	StructureTypeViewportStateCreateInfo          StructureType = 22
	StructureTypeRasterizationStateCreateInfo     StructureType = 23
	StructureTypeMultisampleStateCreateInfo       StructureType = 24
	StructureTypeDepthStencilStateCreateInfo      StructureType = 25
	StructureTypeColorBlendStateCreateInfo        StructureType = 26
	StructureTypeDynamicStateCreateInfo           StructureType = 27
	StructureTypeGraphicsPipelineCreateInfo       StructureType = 28
	StructureTypeComputePipelineCreateInfo        StructureType = 29
	StructureTypeDescriptorPoolCreateInfo         StructureType = 33
	StructureTypeWriteDescriptorSet               StructureType = 35
	StructureTypeCopyDescriptorSet                StructureType = 36
	StructureTypeFramebufferCreateInfo            StructureType = 37
	StructureTypeRenderPassCreateInfo             StructureType = 38
	StructureTypeBufferMemoryBarrier              StructureType = 44
	StructureTypeImageMemoryBarrier               StructureType = 45
	StructureTypeMemoryBarrier                    StructureType = 46
	StructureTypeSwapchainCreateInfoKHR           StructureType = 1000001000
	StructureTypePresentInfoKHR                   StructureType = 1000001001
	StructureTypeDebugReportCallbackCreateInfoEXT StructureType = 1000011000
	StructureTypeDebugMarkerMarkerInfoEXT         StructureType = 1000022002
	StructureTypeValidationFlagsEXT               StructureType = 1000061000
	StructureTypeDeviceGroupDeviceCreateInfo      StructureType = 1000070001
	StructureTypeExportMemoryAllocateInfo         StructureType = 1000072002
	StructureTypeMemoryDedicatedAllocateInfo      StructureType = 1000127001
)

// Chained is implemented by every structure that can appear in a Next chain.
type Chained interface {
	StructureType() StructureType
	NextInChain() Chained
}

type ApplicationInfo struct {
	Next               Chained
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         uint32
}

type InstanceCreateInfo struct {
	Next                  Chained
	Flags                 uint32
	ApplicationInfo       *ApplicationInfo
	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

type DeviceQueueCreateInfo struct {
	Next             Chained
	Flags            uint32
	QueueFamilyIndex uint32
	QueuePriorities  []float32
}

type DeviceCreateInfo struct {
	Next                  Chained
	Flags                 uint32
	QueueCreateInfos      []DeviceQueueCreateInfo
	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

type MemoryAllocateInfo struct {
	Next            Chained
	AllocationSize  DeviceSize
	MemoryTypeIndex uint32
}

type MappedMemoryRange struct {
	Next   Chained
	Memory DeviceMemory
	Offset DeviceSize
	Size   DeviceSize
}

type SubmitInfo struct {
	Next             Chained
	WaitSemaphores   []Semaphore
	WaitDstStageMask []uint32
	CommandBuffers   []CommandBuffer
	SignalSemaphores []Semaphore
}

type DescriptorPoolSize struct {
	Type            uint32
	DescriptorCount uint32
}

type DescriptorPoolCreateInfo struct {
	Next      Chained
	Flags     uint32
	MaxSets   uint32
	PoolSizes []DescriptorPoolSize
}

type FramebufferCreateInfo struct {
	Next        Chained
	Flags       uint32
	RenderPass  RenderPass
	Attachments []ImageView
	Width       uint32
	Height      uint32
	Layers      uint32
}

type AttachmentDescription struct {
	Flags          uint32
	Format         uint32
	Samples        uint32
	LoadOp         uint32
	StoreOp        uint32
	StencilLoadOp  uint32
	StencilStoreOp uint32
	InitialLayout  uint32
	FinalLayout    uint32
}

type AttachmentReference struct {
	Attachment uint32
	Layout     uint32
}

type SubpassDescription struct {
	Flags                  uint32
	PipelineBindPoint      uint32
	InputAttachments       []AttachmentReference
	ColorAttachments       []AttachmentReference
	ResolveAttachments     []AttachmentReference
	DepthStencilAttachment *AttachmentReference
	PreserveAttachments    []uint32
}

type SubpassDependency struct {
	SrcSubpass      uint32
	DstSubpass      uint32
	SrcStageMask    uint32
	DstStageMask    uint32
	SrcAccessMask   uint32
	DstAccessMask   uint32
	DependencyFlags uint32
}

type RenderPassCreateInfo struct {
	Next         Chained
	Flags        uint32
	Attachments  []AttachmentDescription
	Subpasses    []SubpassDescription
	Dependencies []SubpassDependency
}

type MemoryBarrier struct {
	Next          Chained
	SrcAccessMask uint32
	DstAccessMask uint32
}

type BufferMemoryBarrier struct {
	Next                Chained
	SrcAccessMask       uint32
	DstAccessMask       uint32
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              Buffer
	Offset              DeviceSize
	Size                DeviceSize
}

type ImageSubresourceRange struct {
	AspectMask     uint32
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

type ImageMemoryBarrier struct {
	Next                Chained
	SrcAccessMask       uint32
	DstAccessMask       uint32
	OldLayout           uint32
	NewLayout           uint32
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    ImageSubresourceRange
}

// DescriptorType selects which of the arrays of a WriteDescriptorSet is used.
type DescriptorType uint32

const (
	DescriptorTypeSampler              DescriptorType = 0
	DescriptorTypeCombinedImageSampler DescriptorType = 1
	DescriptorTypeSampledImage         DescriptorType = 2
	DescriptorTypeStorageImage         DescriptorType = 3
	DescriptorTypeUniformTexelBuffer   DescriptorType = 4
	DescriptorTypeStorageTexelBuffer   DescriptorType = 5
	DescriptorTypeUniformBuffer        DescriptorType = 6
	DescriptorTypeStorageBuffer        DescriptorType = 7
	DescriptorTypeUniformBufferDynamic DescriptorType = 8
	DescriptorTypeStorageBufferDynamic DescriptorType = 9
	DescriptorTypeInputAttachment      DescriptorType = 10
)

// UsesImages returns true if descriptors of type t are read from ImageInfo.
func (t DescriptorType) UsesImages() bool {
	return t <= DescriptorTypeStorageImage || t == DescriptorTypeInputAttachment
}

// UsesTexelBuffers returns true if descriptors of type t are read from
// TexelBufferView.
func (t DescriptorType) UsesTexelBuffers() bool {
	return t == DescriptorTypeUniformTexelBuffer || t == DescriptorTypeStorageTexelBuffer
}

// UsesBuffers returns true if descriptors of type t are read from BufferInfo.
func (t DescriptorType) UsesBuffers() bool {
	return t >= DescriptorTypeUniformBuffer && t <= DescriptorTypeStorageBufferDynamic
}

type DescriptorImageInfo struct {
	Sampler     Sampler
	ImageView   ImageView
	ImageLayout uint32
}

type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset DeviceSize
	Range  DeviceSize
}

// WriteDescriptorSet updates descriptors of DstSet. Only the array selected
// by DescriptorType is read, the others are ignored.
type WriteDescriptorSet struct {
	Next            Chained
	DstSet          DescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorType  DescriptorType
	ImageInfo       []DescriptorImageInfo
	BufferInfo      []DescriptorBufferInfo
	TexelBufferView []BufferView
}

// DescriptorCount returns the length of the array selected by the descriptor
// type.
func (w *WriteDescriptorSet) DescriptorCount() uint32 {
	switch {
	case w.DescriptorType.UsesImages():
		return uint32(len(w.ImageInfo))
	case w.DescriptorType.UsesTexelBuffers():
		return uint32(len(w.TexelBufferView))
	case w.DescriptorType.UsesBuffers():
		return uint32(len(w.BufferInfo))
	}
	return 0
}

type CopyDescriptorSet struct {
	Next            Chained
	SrcSet          DescriptorSet
	SrcBinding      uint32
	SrcArrayElement uint32
	DstSet          DescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorCount uint32
}

type SpecializationMapEntry struct {
	ConstantID uint32
	Offset     uint32
	Size       uint64
}

type SpecializationInfo struct {
	MapEntries []SpecializationMapEntry
	Data       []byte
}

type PipelineShaderStageCreateInfo struct {
	Next               Chained
	Flags              uint32
	Stage              uint32
	Module             ShaderModule
	Name               string
	SpecializationInfo *SpecializationInfo
}

type VertexInputBindingDescription struct {
	Binding   uint32
	Stride    uint32
	InputRate uint32
}

type VertexInputAttributeDescription struct {
	Location uint32
	Binding  uint32
	Format   uint32
	Offset   uint32
}

type PipelineVertexInputStateCreateInfo struct {
	Next       Chained
	Flags      uint32
	Bindings   []VertexInputBindingDescription
	Attributes []VertexInputAttributeDescription
}

type PipelineInputAssemblyStateCreateInfo struct {
	Next                   Chained
	Flags                  uint32
	Topology               uint32
	PrimitiveRestartEnable Bool32
}

type PipelineTessellationStateCreateInfo struct {
	Next               Chained
	Flags              uint32
	PatchControlPoints uint32
}

type Viewport struct {
	X, Y, Width, Height, MinDepth, MaxDepth float32
}

type Offset2D struct {
	X, Y int32
}

type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

type PipelineViewportStateCreateInfo struct {
	Next      Chained
	Flags     uint32
	Viewports []Viewport
	Scissors  []Rect2D
}

type PipelineRasterizationStateCreateInfo struct {
	Next                    Chained
	Flags                   uint32
	DepthClampEnable        Bool32
	RasterizerDiscardEnable Bool32
	PolygonMode             uint32
	CullMode                uint32
	FrontFace               uint32
	DepthBiasEnable         Bool32
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
}

type PipelineMultisampleStateCreateInfo struct {
	Next                  Chained
	Flags                 uint32
	RasterizationSamples  uint32
	SampleShadingEnable   Bool32
	MinSampleShading      float32
	SampleMask            []uint32
	AlphaToCoverageEnable Bool32
	AlphaToOneEnable      Bool32
}

type StencilOpState struct {
	FailOp      uint32
	PassOp      uint32
	DepthFailOp uint32
	CompareOp   uint32
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

type PipelineDepthStencilStateCreateInfo struct {
	Next                  Chained
	Flags                 uint32
	DepthTestEnable       Bool32
	DepthWriteEnable      Bool32
	DepthCompareOp        uint32
	DepthBoundsTestEnable Bool32
	StencilTestEnable     Bool32
	Front                 StencilOpState
	Back                  StencilOpState
	MinDepthBounds        float32
	MaxDepthBounds        float32
}

type PipelineColorBlendAttachmentState struct {
	BlendEnable         Bool32
	SrcColorBlendFactor uint32
	DstColorBlendFactor uint32
	ColorBlendOp        uint32
	SrcAlphaBlendFactor uint32
	DstAlphaBlendFactor uint32
	AlphaBlendOp        uint32
	ColorWriteMask      uint32
}

type PipelineColorBlendStateCreateInfo struct {
	Next           Chained
	Flags          uint32
	LogicOpEnable  Bool32
	LogicOp        uint32
	Attachments    []PipelineColorBlendAttachmentState
	BlendConstants [4]float32
}

type PipelineDynamicStateCreateInfo struct {
	Next          Chained
	Flags         uint32
	DynamicStates []uint32
}

// GraphicsPipelineCreateInfo describes one graphics pipeline. Nil state
// pointers are recorded as null.
type GraphicsPipelineCreateInfo struct {
	Next               Chained
	Flags              uint32
	Stages             []PipelineShaderStageCreateInfo
	VertexInputState   *PipelineVertexInputStateCreateInfo
	InputAssemblyState *PipelineInputAssemblyStateCreateInfo
	TessellationState  *PipelineTessellationStateCreateInfo
	ViewportState      *PipelineViewportStateCreateInfo
	RasterizationState *PipelineRasterizationStateCreateInfo
	MultisampleState   *PipelineMultisampleStateCreateInfo
	DepthStencilState  *PipelineDepthStencilStateCreateInfo
	ColorBlendState    *PipelineColorBlendStateCreateInfo
	DynamicState       *PipelineDynamicStateCreateInfo
	Layout             PipelineLayout
	RenderPass         RenderPass
	Subpass            uint32
	BasePipelineHandle Pipeline
	BasePipelineIndex  int32
}

type ComputePipelineCreateInfo struct {
	Next               Chained
	Flags              uint32
	Stage              PipelineShaderStageCreateInfo
	Layout             PipelineLayout
	BasePipelineHandle Pipeline
	BasePipelineIndex  int32
}

type Extent2D struct {
	Width, Height uint32
}

type Extent3D struct {
	Width, Height, Depth uint32
}

type SwapchainCreateInfoKHR struct {
	Next               Chained
	Flags              uint32
	Surface            SurfaceKHR
	MinImageCount      uint32
	ImageFormat        uint32
	ImageColorSpace    uint32
	ImageExtent        Extent2D
	ImageArrayLayers   uint32
	ImageUsage         uint32
	ImageSharingMode   uint32
	QueueFamilyIndices []uint32
	PreTransform       uint32
	CompositeAlpha     uint32
	PresentMode        uint32
	Clipped            Bool32
	OldSwapchain       SwapchainKHR
}

type PresentInfoKHR struct {
	Next           Chained
	WaitSemaphores []Semaphore
	Swapchains     []SwapchainKHR
	ImageIndices   []uint32
	// Results, when non-nil, must have one entry per swapchain and receives
	// the per-swapchain result.
	Results        []Result
}

type QueueFamilyProperties struct {
	QueueFlags                  uint32
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

type ExtensionProperties struct {
	ExtensionName string
	SpecVersion   uint32
}

type LayerProperties struct {
	LayerName             string
	SpecVersion           uint32
	ImplementationVersion uint32
	Description           string
}

// PFNDebugReportCallbackEXT is invoked by the driver with validation messages.
type PFNDebugReportCallbackEXT func(flags uint32, objectType uint32, object uint64, location uint64, messageCode int32, layerPrefix, message string) Bool32

type DebugReportCallbackCreateInfoEXT struct {
	Next     Chained
	Flags    uint32
	Callback PFNDebugReportCallbackEXT
	UserData uintptr
}

type DebugMarkerMarkerInfoEXT struct {
	Next       Chained
	MarkerName string
	Color      [4]float32
}

type MemoryDedicatedAllocateInfo struct {
	Next   Chained
	Image  Image
	Buffer Buffer
}

type ExportMemoryAllocateInfo struct {
	Next        Chained
	HandleTypes uint32
}

type DeviceGroupDeviceCreateInfo struct {
	Next            Chained
	PhysicalDevices []PhysicalDevice
}

type ValidationFlagsEXT struct {
	Next                     Chained
	DisabledValidationChecks []uint32
}

func (*ApplicationInfo) StructureType() StructureType { return StructureTypeApplicationInfo }
func (*InstanceCreateInfo) StructureType() StructureType {
	return StructureTypeInstanceCreateInfo
}
func (*DeviceQueueCreateInfo) StructureType() StructureType {
	return StructureTypeDeviceQueueCreateInfo
}
func (*DeviceCreateInfo) StructureType() StructureType   { return StructureTypeDeviceCreateInfo }
func (*MemoryAllocateInfo) StructureType() StructureType { return StructureTypeMemoryAllocateInfo }
func (*MappedMemoryRange) StructureType() StructureType  { return StructureTypeMappedMemoryRange }
func (*SubmitInfo) StructureType() StructureType         { return StructureTypeSubmitInfo }
func (*DescriptorPoolCreateInfo) StructureType() StructureType {
	return StructureTypeDescriptorPoolCreateInfo
}
func (*FramebufferCreateInfo) StructureType() StructureType {
	return StructureTypeFramebufferCreateInfo
}
func (*RenderPassCreateInfo) StructureType() StructureType {
	return StructureTypeRenderPassCreateInfo
}
func (*SwapchainCreateInfoKHR) StructureType() StructureType {
	return StructureTypeSwapchainCreateInfoKHR
}
func (*PresentInfoKHR) StructureType() StructureType { return StructureTypePresentInfoKHR }
func (*DebugReportCallbackCreateInfoEXT) StructureType() StructureType {
	return StructureTypeDebugReportCallbackCreateInfoEXT
}
func (*DebugMarkerMarkerInfoEXT) StructureType() StructureType {
	return StructureTypeDebugMarkerMarkerInfoEXT
}
func (*MemoryDedicatedAllocateInfo) StructureType() StructureType {
	return StructureTypeMemoryDedicatedAllocateInfo
}
func (*ExportMemoryAllocateInfo) StructureType() StructureType {
	return StructureTypeExportMemoryAllocateInfo
}
func (*DeviceGroupDeviceCreateInfo) StructureType() StructureType {
	return StructureTypeDeviceGroupDeviceCreateInfo
}
func (*ValidationFlagsEXT) StructureType() StructureType { return StructureTypeValidationFlagsEXT }

func (s *ApplicationInfo) NextInChain() Chained                  { return s.Next }
func (s *InstanceCreateInfo) NextInChain() Chained               { return s.Next }
func (s *DeviceQueueCreateInfo) NextInChain() Chained            { return s.Next }
func (s *DeviceCreateInfo) NextInChain() Chained                 { return s.Next }
func (s *MemoryAllocateInfo) NextInChain() Chained               { return s.Next }
func (s *MappedMemoryRange) NextInChain() Chained                { return s.Next }
func (s *SubmitInfo) NextInChain() Chained                       { return s.Next }
func (s *DescriptorPoolCreateInfo) NextInChain() Chained         { return s.Next }
func (s *FramebufferCreateInfo) NextInChain() Chained            { return s.Next }
func (s *RenderPassCreateInfo) NextInChain() Chained             { return s.Next }
func (s *SwapchainCreateInfoKHR) NextInChain() Chained           { return s.Next }
func (s *PresentInfoKHR) NextInChain() Chained                   { return s.Next }
func (s *DebugReportCallbackCreateInfoEXT) NextInChain() Chained { return s.Next }
func (s *DebugMarkerMarkerInfoEXT) NextInChain() Chained         { return s.Next }
func (s *MemoryDedicatedAllocateInfo) NextInChain() Chained      { return s.Next }
func (s *ExportMemoryAllocateInfo) NextInChain() Chained         { return s.Next }
func (s *DeviceGroupDeviceCreateInfo) NextInChain() Chained      { return s.Next }
func (s *ValidationFlagsEXT) NextInChain() Chained               { return s.Next }

func (*MemoryBarrier) StructureType() StructureType {
	return StructureTypeMemoryBarrier
}
func (*BufferMemoryBarrier) StructureType() StructureType {
	return StructureTypeBufferMemoryBarrier
}
func (*ImageMemoryBarrier) StructureType() StructureType {
	return StructureTypeImageMemoryBarrier
}
func (*WriteDescriptorSet) StructureType() StructureType {
	return StructureTypeWriteDescriptorSet
}
func (*CopyDescriptorSet) StructureType() StructureType {
	return StructureTypeCopyDescriptorSet
}
func (*PipelineShaderStageCreateInfo) StructureType() StructureType {
	return StructureTypePipelineShaderStageCreateInfo
}
func (*PipelineVertexInputStateCreateInfo) StructureType() StructureType {
	return StructureTypeVertexInputStateCreateInfo
}
func (*PipelineInputAssemblyStateCreateInfo) StructureType() StructureType {
	return StructureTypeInputAssemblyStateCreateInfo
}
func (*PipelineTessellationStateCreateInfo) StructureType() StructureType {
	return StructureTypeTessellationStateCreateInfo
}
func (*PipelineViewportStateCreateInfo) StructureType() StructureType {
	return StructureTypeViewportStateCreateInfo
}
func (*PipelineRasterizationStateCreateInfo) StructureType() StructureType {
	return StructureTypeRasterizationStateCreateInfo
}
func (*PipelineMultisampleStateCreateInfo) StructureType() StructureType {
	return StructureTypeMultisampleStateCreateInfo
}
func (*PipelineDepthStencilStateCreateInfo) StructureType() StructureType {
	return StructureTypeDepthStencilStateCreateInfo
}
func (*PipelineColorBlendStateCreateInfo) StructureType() StructureType {
	return StructureTypeColorBlendStateCreateInfo
}
func (*PipelineDynamicStateCreateInfo) StructureType() StructureType {
	return StructureTypeDynamicStateCreateInfo
}
func (*GraphicsPipelineCreateInfo) StructureType() StructureType {
	return StructureTypeGraphicsPipelineCreateInfo
}
func (*ComputePipelineCreateInfo) StructureType() StructureType {
	return StructureTypeComputePipelineCreateInfo
}

func (s *MemoryBarrier) NextInChain() Chained                        { return s.Next }
func (s *BufferMemoryBarrier) NextInChain() Chained                  { return s.Next }
func (s *ImageMemoryBarrier) NextInChain() Chained                   { return s.Next }
func (s *WriteDescriptorSet) NextInChain() Chained                   { return s.Next }
func (s *CopyDescriptorSet) NextInChain() Chained                    { return s.Next }
func (s *PipelineShaderStageCreateInfo) NextInChain() Chained        { return s.Next }
func (s *PipelineVertexInputStateCreateInfo) NextInChain() Chained   { return s.Next }
func (s *PipelineInputAssemblyStateCreateInfo) NextInChain() Chained { return s.Next }
func (s *PipelineTessellationStateCreateInfo) NextInChain() Chained  { return s.Next }
func (s *PipelineViewportStateCreateInfo) NextInChain() Chained      { return s.Next }
func (s *PipelineRasterizationStateCreateInfo) NextInChain() Chained { return s.Next }
func (s *PipelineMultisampleStateCreateInfo) NextInChain() Chained   { return s.Next }
func (s *PipelineDepthStencilStateCreateInfo) NextInChain() Chained  { return s.Next }
func (s *PipelineColorBlendStateCreateInfo) NextInChain() Chained    { return s.Next }
func (s *PipelineDynamicStateCreateInfo) NextInChain() Chained       { return s.Next }
func (s *GraphicsPipelineCreateInfo) NextInChain() Chained           { return s.Next }
func (s *ComputePipelineCreateInfo) NextInChain() Chained            { return s.Next }

// IsNil returns true if c is nil or holds a nil structure pointer.
func IsNil(c Chained) bool {
	if c == nil {
		return true
	}
	return reflect.ValueOf(c).IsNil()
}
